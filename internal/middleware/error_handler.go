package middleware

import (
	"errors"

	"pharmastock/internal/repository"
	"pharmastock/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler turns errors returned by handlers into JSON responses:
// validation failures are 400 with the violated rules, unknown ids 404.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verr.Violations,
		})
	}

	if errors.Is(err, repository.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}

	zap.L().Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}
