package middleware

import (
	"songvault/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TraceIDHeader   = "X-Trace-ID"
	TraceIDLocalKey = "traceID"
)

// TraceID reuses an incoming X-Trace-ID or mints one, echoes it on the
// response and seeds the request context for logger.TraceFromContext.
func (m *Middleware) TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(TraceIDHeader, traceID)
		c.Locals(TraceIDLocalKey, traceID)
		c.SetUserContext(logger.ContextWithTraceID(c.UserContext(), traceID))

		return c.Next()
	}
}

func GetTraceID(c *fiber.Ctx) string {
	if traceID, ok := c.Locals(TraceIDLocalKey).(string); ok {
		return traceID
	}
	return ""
}
