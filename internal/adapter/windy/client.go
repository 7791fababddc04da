// Package windy implements the point-forecast fetch adapter against the
// Windy Point Forecast API v2.
package windy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Samulko/SurfForcast/internal/config"
	"github.com/Samulko/SurfForcast/internal/domain"
	"github.com/Samulko/SurfForcast/internal/observability"
)

// Client implements forecast.Fetcher against the Windy API. A circuit
// breaker sheds calls while the upstream is failing so a broken model run
// degrades requests quickly instead of stacking up timeouts.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Windy point-forecast client.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "windy",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey: cfg.WindyAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.WindyTimeout,
		},
		baseURL: cfg.WindyURL,
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

// pointForecastRequest is the Windy API request body.
type pointForecastRequest struct {
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Model      string   `json:"model"`
	Parameters []string `json:"parameters"`
	Levels     []string `json:"levels"`
	Key        string   `json:"key"`
}

// PointForecast performs one POST for the given model and parameter set and
// decodes the response document. Any HTTP, network, or decode failure is
// returned as an error; the caller decides how to degrade.
func (c *Client) PointForecast(ctx context.Context, req domain.PointRequest) (*domain.RawModelDocument, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.doRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.RawModelDocument), nil
}

func (c *Client) doRequest(ctx context.Context, req domain.PointRequest) (*domain.RawModelDocument, error) {
	body, err := json.Marshal(pointForecastRequest{
		Lat:        req.Lat,
		Lon:        req.Lon,
		Model:      req.Model,
		Parameters: req.Parameters,
		Levels:     []string{"surface"},
		Key:        c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s point forecast request: %w", req.Model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("windy API error: model %s: status %d: %s", req.Model, resp.StatusCode, respBody)
	}

	var doc domain.RawModelDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", req.Model, err)
	}

	c.logger.Debug("point forecast fetched",
		"model", req.Model, "lat", req.Lat, "lon", req.Lon,
		"timestamps", len(doc.Timestamps), "fields", len(doc.Fields))

	return &doc, nil
}
