package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"neighborly/internal/core"
)

var generationOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "neighborly_generation_outcomes_total",
		Help: "Generation pipeline outcomes by content kind, source and failure reason.",
	},
	[]string{"kind", "source", "reason"},
)

func recordOutcome(kind core.Kind, source core.Source, reason core.FailureKind) {
	label := string(reason)
	if label == "" {
		label = "none"
	}
	generationOutcomes.WithLabelValues(string(kind), string(source), label).Inc()
}
