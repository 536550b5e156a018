package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request with status, latency, method and
// path. Responses of 400 and above are logged at warn level.
func RequestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		entry := log.WithFields(logrus.Fields{
			"status":     status,
			"latency":    time.Since(start).String(),
			"method":     c.Method(),
			"path":       c.Path(),
			"ip":         c.IP(),
			"request_id": c.Locals("requestid"),
		})
		if status >= fiber.StatusBadRequest {
			entry.Warn("request")
		} else {
			entry.Info("request")
		}
		return err
	}
}
