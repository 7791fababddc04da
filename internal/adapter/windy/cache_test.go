package windy

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samulko/SurfForcast/internal/domain"
)

// countingFetcher returns a fresh valid document per call and records how
// often it was hit.
type countingFetcher struct {
	calls int
	err   error
	doc   func() *domain.RawModelDocument
}

func (f *countingFetcher) PointForecast(_ context.Context, _ domain.PointRequest) (*domain.RawModelDocument, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc(), nil
}

func validDoc() *domain.RawModelDocument {
	v := 1.5
	return &domain.RawModelDocument{
		Timestamps: []int64{1672531200000},
		Units:      map[string]string{"waves_height-surface": "m"},
		Fields:     map[string][]*float64{"waves_height-surface": {&v}},
	}
}

func req(model string) domain.PointRequest {
	return domain.PointRequest{Model: model, Parameters: []string{"waves"}, Lat: 21.66, Lon: -158.05}
}

func TestCachedFetcher_HitWithinTTL(t *testing.T) {
	inner := &countingFetcher{doc: validDoc}
	clock := clockwork.NewFakeClock()
	cached := NewCachedFetcher(inner, 10, 10*time.Minute, clock, testMetrics())

	first, err := cached.PointForecast(context.Background(), req("gfsWave"))
	require.NoError(t, err)
	second, err := cached.PointForecast(context.Background(), req("gfsWave"))
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Same(t, first, second)
}

func TestCachedFetcher_ExpiresAfterTTL(t *testing.T) {
	inner := &countingFetcher{doc: validDoc}
	clock := clockwork.NewFakeClock()
	cached := NewCachedFetcher(inner, 10, 10*time.Minute, clock, testMetrics())

	_, err := cached.PointForecast(context.Background(), req("gfsWave"))
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)

	_, err = cached.PointForecast(context.Background(), req("gfsWave"))
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_DistinctModelsAreDistinctKeys(t *testing.T) {
	inner := &countingFetcher{doc: validDoc}
	cached := NewCachedFetcher(inner, 10, 10*time.Minute, clockwork.NewFakeClock(), testMetrics())

	_, err := cached.PointForecast(context.Background(), req("gfsWave"))
	require.NoError(t, err)
	_, err = cached.PointForecast(context.Background(), req("gfs"))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_ErrorsAreNotCached(t *testing.T) {
	inner := &countingFetcher{err: errors.New("boom"), doc: validDoc}
	cached := NewCachedFetcher(inner, 10, 10*time.Minute, clockwork.NewFakeClock(), testMetrics())

	_, err := cached.PointForecast(context.Background(), req("gfsWave"))
	require.Error(t, err)

	inner.err = nil
	_, err = cached.PointForecast(context.Background(), req("gfsWave"))
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_InvalidDocumentsAreNotCached(t *testing.T) {
	inner := &countingFetcher{doc: func() *domain.RawModelDocument {
		return &domain.RawModelDocument{} // no timestamps, no units
	}}
	cached := NewCachedFetcher(inner, 10, 10*time.Minute, clockwork.NewFakeClock(), testMetrics())

	_, err := cached.PointForecast(context.Background(), req("gfsWave"))
	require.NoError(t, err)
	_, err = cached.PointForecast(context.Background(), req("gfsWave"))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetcher_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingFetcher{doc: validDoc}
	cached := NewCachedFetcher(inner, 2, 10*time.Minute, clockwork.NewFakeClock(), testMetrics())

	ctx := context.Background()
	reqAt := func(lat float64) domain.PointRequest {
		return domain.PointRequest{Model: "gfsWave", Parameters: []string{"waves"}, Lat: lat, Lon: 0}
	}

	_, _ = cached.PointForecast(ctx, reqAt(1)) // miss, cached
	_, _ = cached.PointForecast(ctx, reqAt(2)) // miss, cached
	_, _ = cached.PointForecast(ctx, reqAt(1)) // hit, refreshes recency
	_, _ = cached.PointForecast(ctx, reqAt(3)) // miss, evicts lat=2
	require.Equal(t, 3, inner.calls)

	_, _ = cached.PointForecast(ctx, reqAt(1)) // still cached
	assert.Equal(t, 3, inner.calls)

	_, _ = cached.PointForecast(ctx, reqAt(2)) // evicted, refetched
	assert.Equal(t, 4, inner.calls)
}

func TestCacheKeyIncludesParameters(t *testing.T) {
	a := cacheKey(domain.PointRequest{Model: "gfs", Parameters: []string{"wind"}, Lat: 1, Lon: 2})
	b := cacheKey(domain.PointRequest{Model: "gfs", Parameters: []string{"wind", "temp"}, Lat: 1, Lon: 2})
	assert.NotEqual(t, a, b)

	rounded := cacheKey(domain.PointRequest{Model: "gfs", Parameters: []string{"wind"}, Lat: 1.00001, Lon: 2})
	assert.Equal(t, a, rounded, fmt.Sprintf("expected %q to round to %q", rounded, a))
}
