package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/currency-proxy/pkg/cache"
	"github.com/amirasaad/currency-proxy/pkg/config"
	"github.com/amirasaad/currency-proxy/pkg/correlation"
	"github.com/amirasaad/currency-proxy/pkg/domain"
	"github.com/amirasaad/currency-proxy/pkg/provider"
	"github.com/amirasaad/currency-proxy/pkg/resilience"
)

// Frankfurter implements provider.CurrencyProvider against the Frankfurter
// API, memoizing responses in the cache and running every network call
// through the resilience pipeline.
type Frankfurter struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.RateCache
	pipeline   *resilience.Pipeline
	logger     *slog.Logger
	cfg        config.FrankfurterConfig
	excluded   map[string]struct{}
}

// latestResponse is the Frankfurter /latest payload.
type latestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// historicalResponse is the Frankfurter time-series payload.
type historicalResponse struct {
	Base      string                        `json:"base"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Rates     map[string]map[string]float64 `json:"rates"`
}

// NewFrankfurter creates a Frankfurter adapter. The base URL is required;
// a blank value is a startup error.
func NewFrankfurter(cfg config.FrankfurterConfig, rateCache cache.RateCache, pipeline *resilience.Pipeline, logger *slog.Logger) (*Frankfurter, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("frankfurter base URL is not configured")
	}
	if logger == nil {
		logger = slog.Default()
	}

	excluded := make(map[string]struct{}, len(cfg.ExcludedCurrencies))
	for _, code := range cfg.ExcludedCurrencies {
		excluded[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}

	f := &Frankfurter{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		cache:    rateCache,
		pipeline: pipeline,
		logger:   logger,
		cfg:      cfg,
		excluded: excluded,
	}
	logger.Info("Frankfurter provider initialized", "base_url", f.baseURL)
	return f, nil
}

// GetLatestRates returns the current rates for baseCurrency, serving from
// cache when possible. An empty upstream body yields an empty snapshot
// rather than an error.
func (f *Frankfurter) GetLatestRates(ctx context.Context, baseCurrency string) (*domain.ExchangeRateSnapshot, error) {
	cacheKey := "latest-" + strings.ToUpper(baseCurrency)
	if v, ok := f.cache.Get(cacheKey); ok {
		f.logger.Info("Cache hit", "key", cacheKey)
		return v.(*domain.ExchangeRateSnapshot), nil
	}

	endpoint := fmt.Sprintf("%s/latest?base=%s", f.baseURL, url.QueryEscape(baseCurrency))
	f.logger.Info("Fetching latest rates", "base", baseCurrency, "url", endpoint)

	resp, err := resilience.Do(ctx, f.pipeline, func(ctx context.Context) (*latestResponse, error) {
		var r latestResponse
		if err := f.getJSON(ctx, endpoint, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
	if err != nil {
		f.logger.Error("Error fetching latest rates", "base", baseCurrency, "error", err)
		return nil, fmt.Errorf("get latest rates for %s: %w", baseCurrency, upstreamError(err))
	}

	if resp.Rates == nil {
		f.logger.Warn("No data returned from upstream", "base", baseCurrency)
		return &domain.ExchangeRateSnapshot{
			Base:  strings.ToUpper(baseCurrency),
			Rates: map[string]float64{},
		}, nil
	}

	snapshot := toSnapshot(resp)
	f.cache.Set(cacheKey, snapshot, f.cfg.LatestTTL)
	f.logger.Info("Cached latest rates", "base", baseCurrency, "currencies", len(snapshot.Rates))
	return snapshot, nil
}

// ConvertCurrency converts amount units of from into to. Currencies in the
// excluded set fail validation before any cache lookup or network call.
func (f *Frankfurter) ConvertCurrency(ctx context.Context, from, to string, amount float64) (float64, error) {
	fromUpper := strings.ToUpper(from)
	toUpper := strings.ToUpper(to)
	if f.isExcluded(fromUpper) || f.isExcluded(toUpper) {
		f.logger.Warn("Attempted conversion with excluded currency", "from", from, "to", to)
		return 0, fmt.Errorf("%w: %s or %s is in the excluded list", domain.ErrCurrencyNotAllowed, from, to)
	}

	cacheKey := fmt.Sprintf("convert-%s-%s-%s", from, to, formatAmount(amount))
	if v, ok := f.cache.Get(cacheKey); ok {
		f.logger.Info("Cache hit for conversion", "from", from, "to", to, "amount", amount)
		return v.(float64), nil
	}

	endpoint := fmt.Sprintf("%s/latest?amount=%s&from=%s&to=%s",
		f.baseURL, formatAmount(amount), url.QueryEscape(from), url.QueryEscape(to))
	f.logger.Info("Converting currency", "amount", amount, "from", from, "to", to)

	resp, err := resilience.Do(ctx, f.pipeline, func(ctx context.Context) (*latestResponse, error) {
		var r latestResponse
		if err := f.getJSON(ctx, endpoint, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
	if err != nil {
		f.logger.Error("Error converting currency", "amount", amount, "from", from, "to", to, "error", err)
		return 0, fmt.Errorf("convert %s to %s: %w", from, to, upstreamError(err))
	}

	converted, exists := resp.Rates[toUpper]
	if !exists {
		f.logger.Warn("Missing rate in conversion response", "to", to)
		return 0, fmt.Errorf("%w: rate for %s missing in response", domain.ErrRateNotFound, to)
	}

	f.cache.Set(cacheKey, converted, f.cfg.ConvertTTL)
	f.logger.Info("Converted currency", "amount", amount, "from", from, "converted", converted, "to", to)
	return converted, nil
}

// GetHistoricalRates returns one snapshot per date in [start, end],
// paginated by slicing. A response with no rates map yields an empty
// slice, not an error.
func (f *Frankfurter) GetHistoricalRates(ctx context.Context, baseCurrency string, start, end time.Time, page, pageSize int) ([]domain.ExchangeRateSnapshot, error) {
	cacheKey := fmt.Sprintf("history-%s-%s-%s-%d-%d",
		baseCurrency, start.Format("20060102"), end.Format("20060102"), page, pageSize)
	if v, ok := f.cache.Get(cacheKey); ok {
		f.logger.Info("Cache hit for historical rates", "key", cacheKey)
		return v.([]domain.ExchangeRateSnapshot), nil
	}

	endpoint := fmt.Sprintf("%s/%s..%s?base=%s",
		f.baseURL, start.Format("2006-01-02"), end.Format("2006-01-02"), url.QueryEscape(baseCurrency))
	f.logger.Info("Fetching historical rates", "base", baseCurrency, "start", start, "end", end)

	resp, err := resilience.Do(ctx, f.pipeline, func(ctx context.Context) (*historicalResponse, error) {
		var r historicalResponse
		if err := f.getJSON(ctx, endpoint, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
	if err != nil {
		f.logger.Error("Error fetching historical rates", "base", baseCurrency, "start", start, "end", end, "error", err)
		return nil, fmt.Errorf("get historical rates for %s: %w", baseCurrency, upstreamError(err))
	}

	if resp.Rates == nil {
		f.logger.Warn("No historical rates returned", "base", baseCurrency)
		return []domain.ExchangeRateSnapshot{}, nil
	}

	// Date keys are YYYY-MM-DD; lexical order is chronological.
	dates := make([]string, 0, len(resp.Rates))
	for date := range resp.Rates {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	results := make([]domain.ExchangeRateSnapshot, 0, len(dates))
	for _, date := range paginate(dates, page, pageSize) {
		asOf, _ := time.Parse("2006-01-02", date)
		results = append(results, domain.ExchangeRateSnapshot{
			Base:  resp.Base,
			Date:  asOf,
			Rates: resp.Rates[date],
		})
	}

	f.cache.Set(cacheKey, results, f.cfg.HistoryTTL)
	f.logger.Info("Retrieved historical rates", "base", baseCurrency, "count", len(results))
	return results, nil
}

func (f *Frankfurter) isExcluded(code string) bool {
	_, excluded := f.excluded[code]
	return excluded
}

// getJSON performs one upstream call: correlation header attached, status
// classified for the resilience pipeline, body decoded into v. An empty
// body leaves v untouched; callers decide what that means.
func (f *Frankfurter) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	id := correlation.Attach(ctx, req)
	f.logger.Debug("Attached correlation id to outbound request", "correlation_id", id)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return resilience.Transient(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusRequestTimeout {
		return resilience.Transient(fmt.Errorf("upstream returned status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resilience.Transient(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// upstreamError maps pipeline exhaustion and breaker fail-fast to the
// service-unavailable kind; everything else keeps its own kind.
func upstreamError(err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) || resilience.IsTransient(err) {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return err
}

func toSnapshot(resp *latestResponse) *domain.ExchangeRateSnapshot {
	asOf, _ := time.Parse("2006-01-02", resp.Date)
	return &domain.ExchangeRateSnapshot{
		Amount: resp.Amount,
		Base:   resp.Base,
		Date:   asOf,
		Rates:  resp.Rates,
	}
}

// paginate slices dates the way the reference behaves: a non-positive
// page skips nothing, a non-positive pageSize yields nothing, out-of-range
// pages yield an empty or truncated slice.
func paginate(dates []string, page, pageSize int) []string {
	if pageSize <= 0 {
		return nil
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	if offset >= len(dates) {
		return nil
	}
	limit := offset + pageSize
	if limit > len(dates) {
		limit = len(dates)
	}
	return dates[offset:limit]
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// Ensure Frankfurter implements provider.CurrencyProvider.
var _ provider.CurrencyProvider = (*Frankfurter)(nil)
