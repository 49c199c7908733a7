package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for dataset loading and rendering.
type Metrics struct {
	DatasetLoads   *prometheus.CounterVec // labels: outcome={success,network_error,parse_error,error}
	DatasetRecords prometheus.Gauge
	DatasetYears   prometheus.Gauge
	LoadDuration   prometheus.Histogram
	RefreshRunning prometheus.Gauge

	// Fetch metrics.
	FetchDuration prometheus.Histogram
	FetchRetries  prometheus.Counter

	// Render metrics.
	RenderDuration *prometheus.HistogramVec // labels: view={page,chart,legend}
	RenderCache    *prometheus.CounterVec   // labels: result={hit,miss}
	RenderErrors   *prometheus.CounterVec   // labels: view

	// Publishing metrics.
	MessagesPublished prometheus.Counter
	PublishErrors     prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetLoads,
		m.DatasetRecords,
		m.DatasetYears,
		m.LoadDuration,
		m.RefreshRunning,
		m.FetchDuration,
		m.FetchRetries,
		m.RenderDuration,
		m.RenderCache,
		m.RenderErrors,
		m.MessagesPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "season_heatmap",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by outcome.",
		}, []string{"outcome"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "season_heatmap",
			Name:      "dataset_records",
			Help:      "Number of records in the current dataset.",
		}),
		DatasetYears: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "season_heatmap",
			Name:      "dataset_years",
			Help:      "Number of distinct years in the current dataset.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "season_heatmap",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a complete fetch-aggregate cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "season_heatmap",
			Name:      "refresh_running",
			Help:      "1 while the periodic refresher is active, 0 otherwise.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "season_heatmap",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single CSV fetch attempt.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FetchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "season_heatmap",
			Name:      "fetch_retries_total",
			Help:      "Total CSV fetch retries after a network failure.",
		}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "season_heatmap",
			Name:      "render_duration_seconds",
			Help:      "Duration of rendering a view.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"view"}),
		RenderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "season_heatmap",
			Name:      "render_cache_total",
			Help:      "Render cache lookups by result.",
		}, []string{"result"}),
		RenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "season_heatmap",
			Name:      "render_errors_total",
			Help:      "Render failures by view.",
		}, []string{"view"}),
		MessagesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "season_heatmap",
			Name:      "messages_published_total",
			Help:      "Total top-season messages written to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "season_heatmap",
			Name:      "publish_errors_total",
			Help:      "Total failed top-season publish attempts.",
		}),
	}
}
