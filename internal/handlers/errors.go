package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobhunt/match-analyzer/internal/logger"
	"jobhunt/match-analyzer/internal/models"
	"jobhunt/match-analyzer/internal/services"
)

// ErrorHandler renders every error as {"detail": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if message == "" {
		message = "Internal Server Error"
	}

	return c.Status(code).JSON(models.ErrorResponse{Detail: message})
}

// toHTTPError maps the service error taxonomy onto status codes. Input
// problems are 400, everything else is 500.
func toHTTPError(err error) error {
	var inputErr *services.InputError
	if errors.As(err, &inputErr) {
		return fiber.NewError(fiber.StatusBadRequest, inputErr.Message)
	}

	logger.Log.WithError(err).Error("❌ Analysis request failed")
	return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error: "+err.Error())
}
