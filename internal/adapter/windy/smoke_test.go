//go:build windy

package windy

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samulko/SurfForcast/internal/domain"
)

// These tests hit the real Windy API and require a valid WINDY_API_KEY env var.
// Run with: go test -tags=windy ./internal/adapter/windy/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	key := os.Getenv("WINDY_API_KEY")
	if key == "" {
		t.Fatal("WINDY_API_KEY must be set to run smoke tests")
	}
	return &Client{
		apiKey:     key,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://api.windy.com/api/point-forecast/v2",
		breaker:    gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "windy-smoke"}),
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_WaveModel(t *testing.T) {
	c := smokeClient(t)

	// Pipeline, Oahu.
	doc, err := c.PointForecast(context.Background(), domain.PointRequest{
		Model:      "gfsWave",
		Parameters: []string{"waves", "windWaves", "swell1"},
		Lat:        21.6649,
		Lon:        -158.0539,
	})
	require.NoError(t, err)

	assert.True(t, doc.Valid())
	assert.NotEmpty(t, doc.Timestamps)
	assert.Contains(t, doc.Units, "waves_height-surface")
	assert.NotEmpty(t, doc.Fields["waves_height-surface"])
}

func TestSmoke_WindModel(t *testing.T) {
	c := smokeClient(t)

	doc, err := c.PointForecast(context.Background(), domain.PointRequest{
		Model:      "gfs",
		Parameters: []string{"wind", "windGust"},
		Lat:        21.6649,
		Lon:        -158.0539,
	})
	require.NoError(t, err)

	assert.True(t, doc.Valid())
	assert.Contains(t, doc.Fields, "wind_u-surface")
	assert.Contains(t, doc.Fields, "wind_v-surface")
}
