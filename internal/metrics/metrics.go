// Package metrics holds the Prometheus collectors exposed on /metrics.
//
// Collectors register themselves with the default registry via promauto,
// so importing the package is enough to make them visible.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat outcomes.
const (
	ChatSuccess  = "success"
	ChatFallback = "fallback"
)

var (
	// HTTPRequestsTotal counts requests by method, chi route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records handler latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wellness_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RecordsCreated counts tracker entries written, by kind (mood, sleep, ...).
	RecordsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_records_created_total",
		Help: "Total number of tracker records created by kind",
	}, []string{"kind"})

	// ChatCompletions counts chat relay calls by outcome.
	ChatCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_chat_completions_total",
		Help: "Total number of chat relay calls by outcome",
	}, []string{"outcome"})

	// ChatLatency records how long the upstream model took to answer.
	ChatLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wellness_chat_latency_seconds",
		Help:    "Chat completion latency in seconds, including failures",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
	})
)

// ObserveChat records one chat relay call.
func ObserveChat(outcome string, start time.Time) {
	ChatCompletions.WithLabelValues(outcome).Inc()
	ChatLatency.Observe(time.Since(start).Seconds())
}
