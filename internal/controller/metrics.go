package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/ivaltryek/kube-nimble/internal/reconciler"
)

const (
	OutcomeAbsent   = "absent"
	OutcomeApplied  = "applied"
	OutcomeRendered = "rendered"
	OutcomeError    = "error"
)

var reconcileOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "nimble_reconcile_outcomes_total",
		Help: "Reconciles per derived kind, partitioned by what the reconcile did.",
	},
	[]string{"kind", "outcome"},
)

func init() {
	metrics.Registry.MustRegister(reconcileOutcomes)
}

func outcome(result reconciler.Result, err error) string {
	switch {
	case err != nil, result.Warning != nil:
		return OutcomeError
	case result.Outcome.Applied:
		return OutcomeApplied
	case result.Outcome.Requested:
		return OutcomeRendered
	default:
		return OutcomeAbsent
	}
}
