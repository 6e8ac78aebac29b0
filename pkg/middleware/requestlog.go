package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amirasaad/currency-proxy/pkg/correlation"
)

// RequestLogger logs one line per request with method, path, status,
// duration and the correlation id.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		id, _ := c.Locals(correlation.Header).(string)
		logger.Info("Handled request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
			"correlation_id", id,
		)
		return err
	}
}
