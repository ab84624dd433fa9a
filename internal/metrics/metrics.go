package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipebox"

// Metrics holds the Prometheus collectors for one process.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	recipeOps       *prometheus.CounterVec
	imageBytes      prometheus.Histogram
	cleanupFailures prometheus.Counter
}

// New registers a fresh set of collectors on their own registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "path"},
		),
		recipeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "recipes",
				Name:      "operations_total",
				Help:      "Recipe service operations by kind and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		imageBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "images",
				Name:      "upload_bytes",
				Help:      "Size of uploaded recipe images.",
				Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 10), // 16KiB to 8MiB
			},
		),
		cleanupFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "images",
				Name:      "cleanup_failures_total",
				Help:      "Image files that could not be removed after their recipe was deleted.",
			},
		),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.recipeOps,
		m.imageBytes,
		m.cleanupFailures,
	)
	return m
}

// RecordHTTPRequest records one handled request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordOperation counts a recipe service operation.
func (m *Metrics) RecordOperation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.recipeOps.WithLabelValues(operation, outcome).Inc()
}

// ObserveUpload records the size of a stored image.
func (m *Metrics) ObserveUpload(size int) {
	m.imageBytes.Observe(float64(size))
}

// IncCleanupFailure counts an image left behind by a recipe delete.
func (m *Metrics) IncCleanupFailure() {
	m.cleanupFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
