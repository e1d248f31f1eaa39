// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VerificationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_requests_total",
			Help: "Total number of verification requests by route and outcome",
		},
		[]string{"route", "outcome"},
	)

	VerificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "verification_duration_seconds",
			Help:    "End-to-end verification latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"route"},
	)

	UpstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Total number of outbound calls by upstream and outcome",
		},
		[]string{"upstream", "outcome"},
	)

	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "upstream_call_duration_seconds",
			Help: "Duration of outbound calls in seconds",
		},
		[]string{"upstream"},
	)

	ExtractionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_fallbacks_total",
			Help: "Model replies replaced by a fixed result, by shape and reason",
		},
		[]string{"shape", "reason"},
	)

	SearchMode = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_mode_total",
			Help: "Search enrichment outcomes by mode (live, mock, canned, empty)",
		},
		[]string{"mode"},
	)

	InFlightRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "verification_requests_in_flight",
			Help: "Number of verification requests currently being processed",
		},
	)
)
