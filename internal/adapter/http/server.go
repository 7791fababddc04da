package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Samulko/SurfForcast/internal/domain"
	"github.com/Samulko/SurfForcast/internal/forecast"
)

// ForecastProvider produces a merged forecast series for a coordinate.
type ForecastProvider interface {
	Forecast(ctx context.Context, lat, lon float64) (*domain.ForecastSeries, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the forecast endpoint plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	provider   ForecastProvider
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/forecast, /healthz, /readyz, and
// /metrics routes.
func NewServer(addr string, provider ForecastProvider, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		logger:   logger,
	}

	mux.HandleFunc("GET /v1/forecast", s.handleForecast)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	lat, err := parseCoordinate(r.URL.Query().Get("lat"), 90)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lat: " + err.Error()})
		return
	}
	lon, err := parseCoordinate(r.URL.Query().Get("lon"), 180)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lon: " + err.Error()})
		return
	}

	series, err := s.provider.Forecast(r.Context(), lat, lon)
	if err != nil {
		s.writeForecastError(w, lat, lon, err)
		return
	}

	writeJSON(w, http.StatusOK, series)
}

// writeForecastError maps the forecast error taxonomy to status codes: an
// upstream failure with no usable data is a gateway problem, a schema
// validation failure is ours.
func (s *Server) writeForecastError(w http.ResponseWriter, lat, lon float64, err error) {
	var noData *forecast.NoDataError
	if errors.As(err, &noData) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": noData.Error()})
		return
	}

	var validation *forecast.ValidationError
	if errors.As(err, &validation) {
		s.logger.Error("forecast schema validation failed", "lat", lat, "lon", lon, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": validation.Error()})
		return
	}

	s.logger.Error("forecast request failed", "lat", lat, "lon", lon, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func parseCoordinate(raw string, bound float64) (float64, error) {
	if raw == "" {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if v < -bound || v > bound {
		return 0, errors.New("out of range")
	}
	return v, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
