package exchange

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amirasaad/currency-proxy/pkg/config"
	"github.com/amirasaad/currency-proxy/pkg/middleware"
	exchangesvc "github.com/amirasaad/currency-proxy/pkg/service/exchange"
	"github.com/amirasaad/currency-proxy/webapi/common"
)

const defaultProvider = "frankfurter"

// Routes registers the exchange-rate endpoints. All of them require a
// valid bearer token.
func Routes(app *fiber.App, svc *exchangesvc.Service, cfg *config.AppConfig) {
	group := app.Group("/api/v1/exchange-rates", middleware.JwtProtected(cfg.Jwt))

	group.Get("/latest", GetLatestRates(svc))
	group.Get("/convert", ConvertCurrency(svc))
	group.Get("/history", GetHistoricalRates(svc))
}

// GetLatestRates returns the current rates for a base currency.
// @Summary Latest exchange rates
// @Description Get the latest exchange rates for a base currency
// @Tags exchange-rates
// @Produce json
// @Param baseCurrency query string false "Base currency code" default(EUR)
// @Param provider query string false "Upstream provider" default(frankfurter)
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/v1/exchange-rates/latest [get]
// @Security Bearer
func GetLatestRates(svc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := common.BindAndValidateQuery[LatestQuery](c)
		if err != nil {
			return nil
		}
		if q.BaseCurrency == "" {
			q.BaseCurrency = "EUR"
		}
		if q.Provider == "" {
			q.Provider = defaultProvider
		}

		snapshot, err := svc.GetLatestRates(c.UserContext(), q.Provider, q.BaseCurrency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch latest rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Latest rates fetched successfully", snapshot)
	}
}

// ConvertCurrency converts an amount between two currencies.
// @Summary Convert currency
// @Description Convert an amount from one currency to another
// @Tags exchange-rates
// @Produce json
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Param amount query number true "Amount to convert"
// @Param provider query string false "Upstream provider" default(frankfurter)
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/v1/exchange-rates/convert [get]
// @Security Bearer
func ConvertCurrency(svc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := common.BindAndValidateQuery[ConvertQuery](c)
		if err != nil {
			return nil
		}
		if q.Provider == "" {
			q.Provider = defaultProvider
		}

		result, err := svc.ConvertCurrency(c.UserContext(), q.Provider, q.From, q.To, q.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to convert currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency converted successfully", result)
	}
}

// GetHistoricalRates returns paginated historical rates for a base
// currency over a date range.
// @Summary Historical exchange rates
// @Description Get historical exchange rates for a base currency over a date range
// @Tags exchange-rates
// @Produce json
// @Param baseCurrency query string true "Base currency code"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param provider query string false "Upstream provider" default(frankfurter)
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/v1/exchange-rates/history [get]
// @Security Bearer
func GetHistoricalRates(svc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := common.BindAndValidateQuery[HistoryQuery](c)
		if err != nil {
			return nil
		}
		if q.Provider == "" {
			q.Provider = defaultProvider
		}
		if q.Page == 0 {
			q.Page = 1
		}
		if q.PageSize == 0 {
			q.PageSize = 10
		}

		start, _ := time.Parse("2006-01-02", q.Start)
		end, _ := time.Parse("2006-01-02", q.End)

		rates, err := svc.GetHistoricalRates(c.UserContext(), q.Provider, q.BaseCurrency, start, end, q.Page, q.PageSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch historical rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Historical rates fetched successfully", rates)
	}
}
