package provider

import (
	"context"
	"time"

	"github.com/amirasaad/currency-proxy/pkg/domain"
)

// CurrencyProvider is the uniform capability interface every upstream
// adapter implements. Adapters own their caching and resilience policy;
// callers see only the three logical operations.
type CurrencyProvider interface {
	// GetLatestRates returns the current rates for a base currency.
	GetLatestRates(ctx context.Context, baseCurrency string) (*domain.ExchangeRateSnapshot, error)

	// ConvertCurrency converts amount units of from into to, scaled by the
	// upstream.
	ConvertCurrency(ctx context.Context, from, to string, amount float64) (float64, error)

	// GetHistoricalRates returns one snapshot per date in [start, end],
	// paginated by page/pageSize.
	GetHistoricalRates(ctx context.Context, baseCurrency string, start, end time.Time, page, pageSize int) ([]domain.ExchangeRateSnapshot, error)
}
