package handlers

import (
	"errors"
	"strconv"

	"songvault/internal/apperrors"
	"songvault/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyMember),
		errors.Is(err, apperrors.ErrNotMember):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the {"error": ...} envelope. Errors without a known
// category are logged and hidden behind a generic message.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	status := errorStatus(err)
	message := apperrors.Message(err)

	if status == fiber.StatusInternalServerError {
		log.Er("request failed", err, "path", c.Path(), "method", c.Method())
		message = "Internal server error"
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}

// ErrorHandler catches everything fiber raises outside our handlers, such as
// unmatched routes, route constraint misses and recovered panics, and keeps
// the {"error": ...} envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	message := apperrors.Message(err)

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
		if status == fiber.StatusNotFound {
			message = "Not found"
		}
	}

	if status >= fiber.StatusInternalServerError {
		logger.NewWithContext(c.UserContext(), "handlers").
			Function("ErrorHandler").
			Er("unhandled request error", err, "path", c.Path(), "method", c.Method())
		message = "Internal server error"
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func paramID(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, apperrors.ErrNotFound
	}
	return id, nil
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
}
