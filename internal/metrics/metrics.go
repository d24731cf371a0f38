package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// External tool metrics
var (
	ToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_invocations_total",
			Help: "Total number of external tool invocations by outcome.",
		},
		[]string{"tool", "status"},
	)

	ToolInvocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tool_invocation_duration_seconds",
			Help:    "Wall-clock duration of external tool invocations.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"tool"},
	)
)

// HTTP surface metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status code.",
		},
		[]string{"route", "status"},
	)

	TranscriptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcriptions_total",
			Help: "Total number of transcription requests by outcome.",
		},
		[]string{"status"},
	)
)

// Cleanup metrics
var (
	CleanupRemovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cleanup_removed_total",
			Help: "Total number of temp paths removed.",
		},
	)

	CleanupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cleanup_failures_total",
			Help: "Total number of temp paths that could not be removed.",
		},
	)
)

// Tool invocation status label values.
const (
	StatusSuccess     = "success"
	StatusFailed      = "failed"
	StatusStartFailed = "start_failed"
	StatusNoOutput    = "no_output"
	StatusCached      = "cached"
)

func init() {
	prometheus.MustRegister(
		ToolInvocationsTotal,
		ToolInvocationDuration,
		HTTPRequestsTotal,
		TranscriptionsTotal,
		CleanupRemovedTotal,
		CleanupFailuresTotal,
	)
}
