package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"uptask-api/pkg/logger"
)

// LoggerMiddleware access log หนึ่งบรรทัดต่อ request (ไม่ log /health และ websocket)
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" || strings.HasPrefix(c.Path(), "/ws/") {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		logFunc := logger.InfoContext
		if status >= 500 {
			logFunc = logger.ErrorContext
		} else if status >= 400 {
			logFunc = logger.WarnContext
		}

		logFunc(c.UserContext(), "Request completed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"ip", c.IP(),
			"latency", time.Since(start).String(),
			"bytes", len(c.Response().Body()),
		)

		return err
	}
}
