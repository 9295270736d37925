package handlers

import (
	"errors"

	"carwash/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, types.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, types.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, types.ErrCapacityExhausted):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, types.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Er("request failed", err, "path", c.Path())
		return c.Status(status).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	log.Info("request rejected", "path", c.Path(), "status", status, "error", err.Error())
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// parseOptionalBody leaves out untouched when the request has no body.
func parseOptionalBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}
