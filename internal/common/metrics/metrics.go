// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssistantRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_requests_total",
			Help: "Total number of ask requests by executed strategy",
		},
		[]string{"strategy"},
	)

	AssistantRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_request_errors_total",
			Help: "Total number of failed ask requests by error code",
		},
		[]string{"error_code"},
	)

	AssistantRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_request_duration_seconds",
			Help: "Duration of ask request processing in seconds",
		},
		[]string{"strategy"},
	)

	BackendCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_backend_calls_total",
			Help: "Total number of outbound backend calls",
		},
		[]string{"backend", "status"},
	)

	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_backend_call_duration_seconds",
			Help: "Duration of outbound backend calls in seconds",
		},
		[]string{"backend"},
	)

	CompletionPollAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_completion_poll_attempts",
			Help:    "Number of polling attempts per language model completion",
			Buckets: prometheus.LinearBuckets(0, 2, 11),
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
