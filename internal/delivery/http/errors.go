package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/swissrenewables/backend/internal/domain"
	"github.com/swissrenewables/backend/internal/pkg/logger"
)

// ErrorHandler maps pipeline errors to status codes
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var (
		fe  *fiber.Error
		ume *domain.UnknownMetricError
		dse *domain.DataSourceError
	)
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.As(err, &ume):
		code = fiber.StatusBadRequest
		message = ume.Error()
	case errors.As(err, &dse):
		code = fiber.StatusServiceUnavailable
		message = "Plant data is unavailable"
		logger.Error(c.UserContext(), "plant data unavailable", "method", c.Method(), "path", c.Path(), "error", err.Error())
	default:
		logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
