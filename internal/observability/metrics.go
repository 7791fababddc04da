package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast service.
type Metrics struct {
	ForecastRequests *prometheus.CounterVec // labels: outcome={success,no_data,validation_error}
	ForecastPoints   prometheus.Histogram

	// Upstream fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: model, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: model
	MergeWarnings prometheus.Counter

	// Fetch cache metrics.
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}

	// Archive sink metrics.
	ArchivePublishes *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "forecast_requests_total",
			Help:      "Forecast merge requests by outcome.",
		}, []string{"outcome"}),
		ForecastPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surfcast",
			Name:      "forecast_points",
			Help:      "Number of merged points per successful forecast.",
			Buckets:   []float64{1, 8, 16, 24, 32, 48, 64, 96, 128},
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "fetch_requests_total",
			Help:      "Upstream point-forecast calls by model and outcome.",
		}, []string{"model", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "surfcast",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream point-forecast call duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"model"}),
		MergeWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "merge_warnings_total",
			Help:      "Total non-fatal degradations recorded during merges.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "fetch_cache_total",
			Help:      "Point-forecast cache lookups by result.",
		}, []string{"result"}),
		ArchivePublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "archive_publishes_total",
			Help:      "Forecast series published to the archive topic by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.ForecastRequests,
		m.ForecastPoints,
		m.FetchRequests,
		m.FetchDuration,
		m.MergeWarnings,
		m.CacheLookups,
		m.ArchivePublishes,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surfcast", Name: "forecast_requests_total"}, []string{"outcome"}),
		ForecastPoints:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "surfcast", Name: "forecast_points"}),
		FetchRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surfcast", Name: "fetch_requests_total"}, []string{"model", "outcome"}),
		FetchDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "surfcast", Name: "fetch_duration_seconds"}, []string{"model"}),
		MergeWarnings:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "surfcast", Name: "merge_warnings_total"}),
		CacheLookups:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surfcast", Name: "fetch_cache_total"}, []string{"result"}),
		ArchivePublishes: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surfcast", Name: "archive_publishes_total"}, []string{"outcome"}),
	}
}
