package exchange

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirasaad/currency-proxy/pkg/domain"
	"github.com/amirasaad/currency-proxy/pkg/provider"
)

type fakeProvider struct {
	snapshot  *domain.ExchangeRateSnapshot
	converted float64
	history   []domain.ExchangeRateSnapshot
	err       error
}

func (f *fakeProvider) GetLatestRates(ctx context.Context, base string) (*domain.ExchangeRateSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeProvider) ConvertCurrency(ctx context.Context, from, to string, amount float64) (float64, error) {
	return f.converted, f.err
}

func (f *fakeProvider) GetHistoricalRates(ctx context.Context, base string, start, end time.Time, page, pageSize int) ([]domain.ExchangeRateSnapshot, error) {
	return f.history, f.err
}

func newTestService(p provider.CurrencyProvider) *Service {
	registry := provider.NewRegistry()
	registry.Register("frankfurter", p)
	return New(registry, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_GetLatestRates(t *testing.T) {
	want := &domain.ExchangeRateSnapshot{Base: "EUR", Rates: map[string]float64{"USD": 1.08}}
	svc := newTestService(&fakeProvider{snapshot: want})

	got, err := svc.GetLatestRates(context.Background(), "Frankfurter", "EUR")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_ConvertCurrency(t *testing.T) {
	svc := newTestService(&fakeProvider{converted: 92.5})

	result, err := svc.ConvertCurrency(context.Background(), "frankfurter", "USD", "EUR", 100)
	require.NoError(t, err)
	assert.Equal(t, &domain.ConversionResult{
		From:      "USD",
		To:        "EUR",
		Amount:    100,
		Converted: 92.5,
	}, result)
}

func TestService_ConvertCurrencyPropagatesError(t *testing.T) {
	svc := newTestService(&fakeProvider{err: domain.ErrCurrencyNotAllowed})

	_, err := svc.ConvertCurrency(context.Background(), "frankfurter", "TRY", "EUR", 100)
	assert.ErrorIs(t, err, domain.ErrCurrencyNotAllowed)
}

func TestService_GetHistoricalRates(t *testing.T) {
	history := []domain.ExchangeRateSnapshot{{Base: "EUR"}}
	svc := newTestService(&fakeProvider{history: history})

	got, err := svc.GetHistoricalRates(context.Background(), "frankfurter", "EUR",
		time.Now().AddDate(0, 0, -7), time.Now(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, history, got)
}

func TestService_UnknownProvider(t *testing.T) {
	svc := newTestService(&fakeProvider{})

	_, err := svc.GetLatestRates(context.Background(), "fixer", "EUR")
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)

	_, err = svc.ConvertCurrency(context.Background(), "fixer", "USD", "EUR", 100)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)

	_, err = svc.GetHistoricalRates(context.Background(), "fixer", "EUR", time.Now(), time.Now(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestService_ProviderErrorsAreNotWrapped(t *testing.T) {
	cause := errors.New("upstream exploded")
	svc := newTestService(&fakeProvider{err: cause})

	_, err := svc.GetLatestRates(context.Background(), "frankfurter", "EUR")
	assert.ErrorIs(t, err, cause)
}

func TestService_Providers(t *testing.T) {
	svc := newTestService(&fakeProvider{})

	assert.Equal(t, []string{"frankfurter"}, svc.Providers())
}
