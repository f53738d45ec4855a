// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Catalog

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Catalog source attempts by outcome",
		},
		[]string{"outcome"}, // "loaded", "missing", "rejected", "fallback"
	)

	CatalogRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_records",
			Help: "Number of records in the active catalog",
		},
	)

	// Recommendations

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendation requests by the fallback tier that answered them",
		},
		[]string{"tier"},
	)

	RecommendationSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_size",
			Help:    "Number of records returned per recommendation",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	ResultCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_total",
			Help: "Result cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// HTTP

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	HTTPPanics = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_panics_recovered_total",
			Help: "Handler panics recovered by middleware",
		},
	)

	WebSocketSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_sessions_active",
			Help: "Open websocket recommendation sessions",
		},
	)
)

// Handler serves the default registry in Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
