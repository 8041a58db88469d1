// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GenerationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illustrator_generation_requests_total",
			Help: "Generation requests by family and outcome",
		},
		[]string{"family", "outcome"}, // outcome: ok|degraded|error
	)
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "illustrator_generation_duration_seconds",
			Help:    "End-to-end generation duration",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 0.25s..128s
		},
		[]string{"family"},
	)
	GenerationAttempts = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "illustrator_generation_attempts",
			Help:    "LLM attempts used per generation",
			Buckets: []float64{1, 2, 3},
		},
		[]string{"family"},
	)
	ConstraintViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illustrator_constraint_violations_total",
			Help: "Constraint violations in final content by direction",
		},
		[]string{"family", "direction"},
	)
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illustrator_llm_requests_total",
			Help: "LLM calls by client and result",
		},
		[]string{"client", "result"}, // result: ok|error
	)
	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "illustrator_llm_request_duration_seconds",
			Help:    "Duration of individual LLM calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"client"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "illustrator_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		GenerationRequests,
		GenerationDuration,
		GenerationAttempts,
		ConstraintViolations,
		LLMRequests,
		LLMRequestDuration,
		HTTPRequestDuration,
	)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveLLMRequest(client string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	LLMRequests.WithLabelValues(client, result).Inc()
	LLMRequestDuration.WithLabelValues(client).Observe(d.Seconds())
}

func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(d.Seconds())
}
