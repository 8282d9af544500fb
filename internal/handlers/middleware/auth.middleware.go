package middleware

import (
	"context"
	"strings"

	"songvault/internal/apperrors"
	"songvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuthContextKey string

const (
	UserKey           AuthContextKey = "user"
	UserKeyFiber      string         = "User"
	SessionIDKeyFiber string         = "SessionID"
)

// RequireAuth accepts a bearer access token and loads the active user it
// belongs to. Anything else is answered with 401.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.TraceFromContext(c.UserContext()).Function("RequireAuth")

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authentication credentials were not provided")
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			return unauthorized(c, "Invalid authorization header format")
		}

		claims, err := m.tokenService.Authenticate(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			return unauthorized(c, apperrors.Message(err))
		}

		user, err := m.userRepo.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			log.Info("token user not found", "userID", claims.UserID)
			return unauthorized(c, "User not found")
		}
		if !user.IsActive {
			log.Info("inactive user rejected", "userID", user.ID)
			return unauthorized(c, "User is inactive")
		}

		c.Locals(UserKeyFiber, user)
		c.Locals(SessionIDKeyFiber, claims.SessionID())
		c.SetUserContext(context.WithValue(c.UserContext(), UserKey, user))

		return c.Next()
	}
}

// RequireStaff must run after RequireAuth
func (m *Middleware) RequireStaff() fiber.Handler {
	log := m.log.Function("RequireStaff")

	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return unauthorized(c, "Authentication credentials were not provided")
		}

		if !user.IsStaff {
			log.Info("user is not staff", "userID", user.ID)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Staff access required",
			})
		}

		return c.Next()
	}
}

func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func GetSessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(SessionIDKeyFiber).(string)
	return sessionID
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}
