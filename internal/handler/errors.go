package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"shop-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service failures onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrMissingCustomerInfo),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInsufficientPoints):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrAccessDenied):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError && !errors.Is(err, service.ErrPersistenceFailure) {
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// bodyError reports a request body BodyParser rejected. A well-formed body
// with a wrongly typed field is classified by that field.
func bodyError(c *fiber.Ctx, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "quantity":
			return respondError(c, fmt.Errorf("%w: got %s", service.ErrInvalidQuantity, typeErr.Value))
		default:
			return respondError(c, fmt.Errorf("%w: field '%s' got %s", service.ErrInvalidInput, typeErr.Field, typeErr.Value))
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}
