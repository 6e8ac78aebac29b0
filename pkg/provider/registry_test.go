package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirasaad/currency-proxy/pkg/domain"
)

type stubProvider struct{}

func (stubProvider) GetLatestRates(ctx context.Context, base string) (*domain.ExchangeRateSnapshot, error) {
	return &domain.ExchangeRateSnapshot{Base: base}, nil
}

func (stubProvider) ConvertCurrency(ctx context.Context, from, to string, amount float64) (float64, error) {
	return amount, nil
}

func (stubProvider) GetHistoricalRates(ctx context.Context, base string, start, end time.Time, page, pageSize int) ([]domain.ExchangeRateSnapshot, error) {
	return nil, nil
}

func TestRegistry_ResolveIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register("Frankfurter", stubProvider{})

	for _, name := range []string{"frankfurter", "FRANKFURTER", "FrankFurter"} {
		p, err := r.Resolve(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}
}

func TestRegistry_ResolveUnknownProvider(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("fixer")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
	assert.Contains(t, err.Error(), "fixer")
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	first := stubProvider{}
	second := stubProvider{}

	r.Register("frankfurter", first)
	r.Register("FRANKFURTER", second)

	assert.Len(t, r.Names(), 1)
}
