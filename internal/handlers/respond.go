package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sneakstore/internal/apperrors"
)

// respondError serializes a service failure. Typed business errors carry
// their own status and reason code; anything else is an internal error and
// only its code leaves the process.
func respondError(c *fiber.Ctx, err error) error {
	var reqErr *apperrors.RequestError
	if errors.As(err, &reqErr) {
		return c.Status(reqErr.Status).JSON(fiber.Map{"error": reqErr.Code})
	}
	log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
}

// respondValidationError serializes validator failures as a field→message map.
func respondValidationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// validator returns *InvalidValidationError for non-struct input.
		log.Printf("Non-field validation failure for %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request_body"})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errorMessages})
}

func respondBadBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body for %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request_body"})
}
