// Package observability holds the Prometheus collectors and the HTTP
// metrics middleware shared by the API.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travelvibe"

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Planner searches by outcome.",
	}, []string{"outcome"})

	itinerariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "itinerary_generations_total",
		Help:      "Itinerary generations by outcome.",
	}, []string{"outcome"})

	gatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Latency of generative backend calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
	}, []string{"operation", "status"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, path and status code.",
	}, []string{"method", "path", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "planner_sessions",
		Help:      "Planner sessions currently held in memory.",
	})
)

// RecordSearch counts a finished search.
func RecordSearch(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

// RecordItinerary counts a finished itinerary generation.
func RecordItinerary(outcome string) {
	itinerariesTotal.WithLabelValues(outcome).Inc()
}

// ObserveGateway records the latency of one generative backend call.
func ObserveGateway(operation string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	gatewayDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// SetActiveSessions reports the number of live planner sessions.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// NewMetricsMiddleware counts requests and records their latency. The path
// label uses the matched ServeMux pattern to keep cardinality bounded.
func NewMetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}
			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
