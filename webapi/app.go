package webapi

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirasaad/currency-proxy/pkg/config"
	"github.com/amirasaad/currency-proxy/pkg/middleware"
	authsvc "github.com/amirasaad/currency-proxy/pkg/service/auth"
	exchangesvc "github.com/amirasaad/currency-proxy/pkg/service/exchange"
	authapi "github.com/amirasaad/currency-proxy/webapi/auth"
	"github.com/amirasaad/currency-proxy/webapi/common"
	"github.com/amirasaad/currency-proxy/webapi/exchange"
)

// New builds the Fiber application with all middleware and routes.
func New(cfg *config.AppConfig, exchangeSvc *exchangesvc.Service, authSvc *authsvc.Service, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
				"Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())
	app.Use(middleware.CorrelationID())
	app.Use(middleware.RequestLogger(logger))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Currency proxy is up")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authapi.Routes(app, authSvc)
	exchange.Routes(app, exchangeSvc, cfg)

	return app
}
