// Package metrics exposes Prometheus collectors for the prerender service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	rendersTotal               *prometheus.CounterVec
	botVisitsTotal             *prometheus.CounterVec
	upstreamErrorsTotal        *prometheus.CounterVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		rendersTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prerender_renders_total",
				Help: "Total number of documents rendered, labeled by content type and status.",
			},
			[]string{"content_type", "status"},
		)

		botVisitsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prerender_bot_visits_total",
				Help: "Total number of non-interactive agent visits, labeled by bot name.",
			},
			[]string{"bot"},
		)

		upstreamErrorsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prerender_upstream_errors_total",
				Help: "Total number of failed upstream fetches, labeled by endpoint.",
			},
			[]string{"endpoint"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRender increments the render counter for a content type and outcome.
func ObserveRender(contentType, status string) {
	if rendersTotal == nil {
		return
	}
	rendersTotal.WithLabelValues(contentType, status).Inc()
}

// ObserveBotVisit increments the visit counter for a bot name.
func ObserveBotVisit(bot string) {
	if botVisitsTotal == nil {
		return
	}
	if bot == "" {
		bot = "other"
	}
	botVisitsTotal.WithLabelValues(bot).Inc()
}

// ObserveUpstreamError increments the upstream failure counter for an endpoint.
func ObserveUpstreamError(endpoint string) {
	if upstreamErrorsTotal == nil {
		return
	}
	upstreamErrorsTotal.WithLabelValues(endpoint).Inc()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
