// Package metrics exposes Prometheus metrics for the query API.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	documentsReturned   *prometheus.CounterVec

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// HTTPMetrics provides methods to record request metrics.
type HTTPMetrics struct{}

// NewHTTPMetrics creates a new HTTPMetrics instance.
// Recording is a no-op until InitMetrics has run.
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{}
}

// InitMetrics registers all metrics with the default registry.
// Safe to call more than once.
func InitMetrics() {
	metricsOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataseeder_http_requests_total",
				Help: "Total number of HTTP requests handled by the query API",
			},
			[]string{"route", "method", "status"},
		)

		httpRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dataseeder_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"route"},
		)

		documentsReturned = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataseeder_documents_returned_total",
				Help: "Total number of documents returned by lookup endpoints",
			},
			[]string{"route"},
		)

		metricsRegistered = true
	})
}

// RecordRequest records a finished request.
func (m *HTTPMetrics) RecordRequest(route, method, status string, durationSeconds float64) {
	if !metricsRegistered {
		return
	}

	httpRequestsTotal.WithLabelValues(route, method, status).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordDocuments records how many documents a lookup returned.
func (m *HTTPMetrics) RecordDocuments(route string, count int) {
	if !metricsRegistered {
		return
	}
	documentsReturned.WithLabelValues(route).Add(float64(count))
}

// GetHTTPRequestsTotal returns the request counter for testing.
func GetHTTPRequestsTotal() *prometheus.CounterVec {
	return httpRequestsTotal
}

// GetHTTPRequestDuration returns the request duration histogram for testing.
func GetHTTPRequestDuration() *prometheus.HistogramVec {
	return httpRequestDuration
}

// GetDocumentsReturned returns the returned documents counter for testing.
func GetDocumentsReturned() *prometheus.CounterVec {
	return documentsReturned
}

// IsMetricsRegistered returns whether metrics have been initialized.
func IsMetricsRegistered() bool {
	return metricsRegistered
}
