package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Generation metrics
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_generations_total",
			Help: "Total number of generations by kind (title, keywords, content) and source (backend, fallback)",
		},
		[]string{"kind", "source"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blog_generation_duration_seconds",
			Help:    "Generation duration in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 90},
		},
		[]string{"kind"},
	)

	BackendFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_backend_failures_total",
			Help: "Backend calls that failed and were replaced by the fallback",
		},
		[]string{"provider", "operation"},
	)

	ParseFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_parse_fallbacks_total",
			Help: "Backend drafts discarded because labeled sections were missing",
		},
	)

	ThresholdRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_threshold_rejections_total",
			Help: "Generated articles rejected by an SEO acceptance threshold",
		},
		[]string{"metric"},
	)

	SEOScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blog_seo_score",
			Help:    "Distribution of computed SEO scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment", "backend"},
	)
)

// Initialize metrics with default values
func Init(serviceName, version, environment, backend string) {
	ApplicationInfo.WithLabelValues(serviceName, version, environment, backend).Set(1)
}
