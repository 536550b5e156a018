package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"jobhunt/match-analyzer/internal/models"
)

const runningMessage = "JobHunt AI Server is Running"

func HandleRoot(c *fiber.Ctx) error {
	return c.JSON(models.StatusResponse{Status: runningMessage})
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}
