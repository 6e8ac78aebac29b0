package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/amirasaad/currency-proxy/pkg/correlation"
)

// CorrelationID honors an inbound X-Correlation-ID header or mints a new
// id, stores it in the request context for downstream calls, and echoes
// it on the response so clients can trace their requests.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(correlation.Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.SetUserContext(correlation.With(c.UserContext(), id))
		c.Locals(correlation.Header, id)
		c.Set(correlation.Header, id)

		return c.Next()
	}
}
