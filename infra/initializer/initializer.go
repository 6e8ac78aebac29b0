package initializer

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	infracache "github.com/amirasaad/currency-proxy/infra/cache"
	infraprovider "github.com/amirasaad/currency-proxy/infra/provider"
	"github.com/amirasaad/currency-proxy/pkg/config"
	"github.com/amirasaad/currency-proxy/pkg/provider"
	"github.com/amirasaad/currency-proxy/pkg/resilience"
	authsvc "github.com/amirasaad/currency-proxy/pkg/service/auth"
	exchangesvc "github.com/amirasaad/currency-proxy/pkg/service/exchange"
)

// Deps holds the wired application dependencies.
type Deps struct {
	Logger   *slog.Logger
	Registry *provider.Registry
	Exchange *exchangesvc.Service
	Auth     *authsvc.Service
}

// InitializeDependencies builds the dependency graph: one cache and one
// resilience pipeline per upstream endpoint, owned by the adapter and
// injected at construction.
func InitializeDependencies(cfg *config.AppConfig) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	metrics := resilience.NewMetrics(prometheus.DefaultRegisterer)
	rateCache := infracache.NewMemoryCache()
	pipeline := resilience.NewPipeline(
		"frankfurter",
		cfg.Frankfurter.MaxRetries,
		cfg.Frankfurter.BackoffBase,
		cfg.Frankfurter.BreakerThreshold,
		cfg.Frankfurter.BreakerOpenFor,
		logger,
		metrics,
	)

	frankfurter, err := infraprovider.NewFrankfurter(cfg.Frankfurter, rateCache, pipeline, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize frankfurter provider: %w", err)
	}

	registry := provider.NewRegistry()
	registry.Register("frankfurter", frankfurter)

	return &Deps{
		Logger:   logger,
		Registry: registry,
		Exchange: exchangesvc.New(registry, logger),
		Auth:     authsvc.New(cfg.Auth, cfg.Jwt, logger),
	}, nil
}
