// Package metrics exposes Prometheus collectors for the verification flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for CallbacksTotal.
const (
	OutcomeSuccess       = "success"
	OutcomeUnknownState  = "unknown_state"
	OutcomeExchangeError = "exchange_error"
	OutcomeForbidden     = "forbidden"
	OutcomeGuildMissing  = "guild_missing"
	OutcomeRoleError     = "role_error"
)

// Metrics groups the collectors; construct one per registry.
type Metrics struct {
	AttemptsStarted prometheus.Counter
	AttemptsExpired prometheus.Counter
	AttemptsPending prometheus.Gauge
	CallbacksTotal  *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AttemptsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "verifier",
			Name:      "attempts_started_total",
			Help:      "Verification attempts created by the verify command.",
		}),
		AttemptsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "verifier",
			Name:      "attempts_expired_total",
			Help:      "Verification attempts removed by the expiry sweeper.",
		}),
		AttemptsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "verifier",
			Name:      "attempts_pending",
			Help:      "Verification attempts currently held in memory.",
		}),
		CallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verifier",
			Name:      "callbacks_total",
			Help:      "OAuth callbacks handled, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.AttemptsStarted, m.AttemptsExpired, m.AttemptsPending, m.CallbacksTotal)
	return m
}

// NewNop returns collectors registered on a throwaway registry, for tests
// and callers that do not expose /metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
