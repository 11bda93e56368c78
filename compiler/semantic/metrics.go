package semantic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statementsValidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volta",
			Subsystem: "semantic",
			Name:      "statements_validated_total",
			Help:      "Statements run through validation, by statement type and outcome.",
		},
		[]string{"statement", "outcome"},
	)
	validationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volta",
			Subsystem: "semantic",
			Name:      "validation_errors_total",
			Help:      "Validation errors produced, by error kind.",
		},
		[]string{"kind"},
	)
)

func observeResult(stype StatementType, res *Result) {
	outcome := "ok"
	if !res.Success {
		outcome = "error"
	}
	statementsValidated.WithLabelValues(stype.String(), outcome).Inc()
	for _, err := range res.Errors {
		validationErrors.WithLabelValues(err.Kind.String()).Inc()
	}
}
