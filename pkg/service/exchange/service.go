package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/currency-proxy/pkg/domain"
	"github.com/amirasaad/currency-proxy/pkg/provider"
)

// Service is the single entry point consumed by the transport layer. Each
// operation resolves a provider through the registry and delegates to it.
type Service struct {
	registry *provider.Registry
	logger   *slog.Logger
}

// New creates an exchange service backed by the given provider registry.
func New(registry *provider.Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry: registry,
		logger:   logger,
	}
}

// GetLatestRates returns the current rates for baseCurrency from the named
// provider.
func (s *Service) GetLatestRates(ctx context.Context, providerName, baseCurrency string) (*domain.ExchangeRateSnapshot, error) {
	p, err := s.registry.Resolve(providerName)
	if err != nil {
		s.logger.Warn("Unknown currency provider", "provider", providerName, "operation", "latest")
		return nil, err
	}
	return p.GetLatestRates(ctx, baseCurrency)
}

// ConvertCurrency converts amount units of from into to using the named
// provider.
func (s *Service) ConvertCurrency(ctx context.Context, providerName, from, to string, amount float64) (*domain.ConversionResult, error) {
	p, err := s.registry.Resolve(providerName)
	if err != nil {
		s.logger.Warn("Unknown currency provider", "provider", providerName, "operation", "convert")
		return nil, err
	}

	converted, err := p.ConvertCurrency(ctx, from, to, amount)
	if err != nil {
		return nil, err
	}
	return &domain.ConversionResult{
		From:      from,
		To:        to,
		Amount:    amount,
		Converted: converted,
	}, nil
}

// GetHistoricalRates returns paginated historical snapshots from the named
// provider.
func (s *Service) GetHistoricalRates(ctx context.Context, providerName, baseCurrency string, start, end time.Time, page, pageSize int) ([]domain.ExchangeRateSnapshot, error) {
	p, err := s.registry.Resolve(providerName)
	if err != nil {
		s.logger.Warn("Unknown currency provider", "provider", providerName, "operation", "history")
		return nil, err
	}
	return p.GetHistoricalRates(ctx, baseCurrency, start, end, page, pageSize)
}

// Providers returns the names of all registered providers.
func (s *Service) Providers() []string {
	return s.registry.Names()
}
