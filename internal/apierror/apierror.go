package apierror

import (
	"errors"

	"delivery-admin/internal/logger"

	"github.com/gofiber/fiber/v2"
)

var log = logger.New("http")

// Handler renders every error as {"error": message}. Errors that are not
// *fiber.Error are logged and hidden behind a generic 500.
func Handler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	log.Errorf("%s %s: unexpected error: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Unexpected server error",
	})
}
