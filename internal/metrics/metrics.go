package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalyzeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_analyze_requests_total",
			Help: "Total number of /analyze requests by outcome",
		},
		[]string{"outcome"},
	)

	AnalyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "persona_analyze_duration_seconds",
			Help:    "Duration of the full analyze pipeline in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_upstream_requests_total",
			Help: "Calls to external providers by provider, operation and outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)

	PersonaSchemaViolations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "persona_schema_violations_total",
			Help: "Persona documents returned by the model that did not match the expected schema",
		},
	)
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)
