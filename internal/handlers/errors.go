package handlers

import (
	"errors"

	"localforum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps domain errors to HTTP status codes. Anything
// unrecognized, persistence failures included, is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrEmptyText),
		errors.Is(err, models.ErrPasswordMismatch):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrUsernameTaken):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// actorFromContext returns the authenticated username stored by the
// JWT middleware.
func actorFromContext(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals("username").(string)
	return username, ok && username != ""
}
