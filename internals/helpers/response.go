package helper

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Every route answers HTTP 200 with a {status, message, ...} envelope;
// the numeric status inside the envelope carries the business outcome.

// ✅ Success envelope with extra payload keys
func JsonOK(c *fiber.Ctx, message string, extra fiber.Map) error {
	payload := fiber.Map{
		"status":  fiber.StatusOK,
		"message": message,
	}
	for k, v := range extra {
		payload[k] = v
	}
	return c.JSON(payload)
}

// Business failure (negative statuses, 400, 404)
func JsonFail(c *fiber.Ctx, status int, message string) error {
	return c.JSON(fiber.Map{
		"status":  status,
		"message": message,
	})
}

// Unexpected failure: log the cause, answer with a generic message.
// Raw error text never reaches the client.
func JsonError(c *fiber.Ctx, op string, err error) error {
	log.Printf("[ERROR] %s: %v", op, err)
	return c.JSON(fiber.Map{
		"status":  fiber.StatusInternalServerError,
		"message": op + " failed",
	})
}

// ✅ validator.v10 errors → 400 envelope with a field map
func JsonValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonFail(c, fiber.StatusBadRequest, "invalid input")
	}
	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}
	return c.JSON(fiber.Map{
		"status":  fiber.StatusBadRequest,
		"message": "validation failed",
		"errors":  errorsMap,
	})
}
