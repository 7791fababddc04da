package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Samulko/SurfForcast/internal/domain"
	"github.com/Samulko/SurfForcast/internal/observability"
)

// Fetcher performs one point-forecast call for a single model and parameter
// set. Implementations must bound their own latency; the service imposes no
// timeout of its own.
type Fetcher interface {
	PointForecast(ctx context.Context, req domain.PointRequest) (*domain.RawModelDocument, error)
}

// Archiver publishes a merged series for downstream consumers.
type Archiver interface {
	Publish(ctx context.Context, lat, lon float64, series *domain.ForecastSeries) error
}

// Sources selects the two model runs that feed one merge.
type Sources struct {
	WaveModel      string
	WaveParameters []string
	WindModel      string
	WindParameters []string
}

// DefaultSources returns the gfsWave/gfs pairing used in production.
func DefaultSources() Sources {
	return Sources{
		WaveModel:      domain.DefaultWaveModel,
		WaveParameters: domain.DefaultWaveParameters,
		WindModel:      domain.DefaultWindModel,
		WindParameters: domain.DefaultWindParameters,
	}
}

// Service orchestrates the concurrent dual fetch, the merge, and the schema
// validation of the final series. It holds no per-request state; every
// invocation is independent.
type Service struct {
	fetcher  Fetcher
	archiver Archiver // nil disables archiving
	sources  Sources
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a forecast Service. Pass a nil archiver to disable publishing.
func New(fetcher Fetcher, archiver Archiver, sources Sources, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher:  fetcher,
		archiver: archiver,
		sources:  sources,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once the service has produced at least one
// successful forecast.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no forecast has been served yet")
	}
	return nil
}

// Forecast fetches the wave and wind model runs concurrently, merges them,
// and validates the result. Both fetches always run to completion before the
// merge starts; a failure on either side degrades the merge instead of
// aborting it. The caller receives either a well-formed series or exactly one
// typed error, never a partial mixture.
func (s *Service) Forecast(ctx context.Context, lat, lon float64) (*domain.ForecastSeries, error) {
	var (
		wg                 sync.WaitGroup
		waveDoc, windDoc   *domain.RawModelDocument
		waveWarn, windWarn string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		waveDoc, waveWarn = s.fetchModel(ctx, "wave", s.sources.WaveModel, s.sources.WaveParameters, lat, lon)
	}()
	go func() {
		defer wg.Done()
		windDoc, windWarn = s.fetchModel(ctx, "wind", s.sources.WindModel, s.sources.WindParameters, lat, lon)
	}()
	wg.Wait()

	var fetchWarnings []string
	if waveWarn != "" {
		fetchWarnings = append(fetchWarnings, waveWarn)
	}
	if windWarn != "" {
		fetchWarnings = append(fetchWarnings, windWarn)
	}

	series := domain.MergeForecast(waveDoc, windDoc, fetchWarnings)

	for _, w := range series.Warnings {
		s.logger.Warn("forecast degraded", "warning", w, "lat", lat, "lon", lon)
	}
	s.metrics.MergeWarnings.Add(float64(len(series.Warnings)))

	if len(series.Forecast) == 0 {
		s.metrics.ForecastRequests.WithLabelValues("no_data").Inc()
		return nil, &NoDataError{Warnings: series.Warnings}
	}

	if err := ValidateSeries(&series); err != nil {
		s.metrics.ForecastRequests.WithLabelValues("validation_error").Inc()
		return nil, &ValidationError{Cause: err, Warnings: series.Warnings}
	}

	s.metrics.ForecastRequests.WithLabelValues("success").Inc()
	s.metrics.ForecastPoints.Observe(float64(len(series.Forecast)))
	s.ready.Store(true)

	s.archive(ctx, lat, lon, &series)

	return &series, nil
}

// fetchModel performs one upstream call and converts any failure into an
// absent document plus a warning string, so the merge can proceed in degraded
// mode no matter what happened on the wire.
func (s *Service) fetchModel(ctx context.Context, source, model string, parameters []string, lat, lon float64) (*domain.RawModelDocument, string) {
	start := time.Now()
	doc, err := s.fetcher.PointForecast(ctx, domain.PointRequest{
		Model:      model,
		Parameters: parameters,
		Lat:        lat,
		Lon:        lon,
	})
	s.metrics.FetchDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Warn("point forecast fetch failed",
			"source", source, "model", model, "lat", lat, "lon", lon, "error", err)
		s.metrics.FetchRequests.WithLabelValues(model, "error").Inc()
		return nil, fmt.Sprintf("%s forecast fetch failed: %v", source, err)
	}
	if doc == nil {
		s.metrics.FetchRequests.WithLabelValues(model, "error").Inc()
		return nil, fmt.Sprintf("%s forecast returned no document", source)
	}

	s.metrics.FetchRequests.WithLabelValues(model, "success").Inc()
	return doc, ""
}

// archive publishes the series best-effort; a failing sink never fails the
// request.
func (s *Service) archive(ctx context.Context, lat, lon float64, series *domain.ForecastSeries) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Publish(ctx, lat, lon, series); err != nil {
		s.logger.Warn("archive publish failed", "lat", lat, "lon", lon, "error", err)
		s.metrics.ArchivePublishes.WithLabelValues("error").Inc()
		return
	}
	s.metrics.ArchivePublishes.WithLabelValues("success").Inc()
}
