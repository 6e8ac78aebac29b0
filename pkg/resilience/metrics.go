package resilience

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes resilience pipeline observability: breaker state, retry
// volume and per-attempt outcomes. State reporting is best-effort and not
// part of the pipeline's correctness contract.
type Metrics struct {
	BreakerState       prometheus.GaugeVec
	RetriesTotal       prometheus.CounterVec
	ShortCircuitsTotal prometheus.CounterVec
	AttemptsTotal      prometheus.CounterVec
}

// NewMetrics registers the resilience metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BreakerState: *factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "upstream_circuit_breaker_state",
				Help: "Circuit breaker state per upstream endpoint (0=closed, 1=open, 2=half-open)",
			},
			[]string{"endpoint"},
		),
		RetriesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_retries_total",
				Help: "Total retry attempts per upstream endpoint",
			},
			[]string{"endpoint"},
		),
		ShortCircuitsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_short_circuits_total",
				Help: "Calls rejected by an open circuit breaker without a network attempt",
			},
			[]string{"endpoint"},
		),
		AttemptsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_attempts_total",
				Help: "Attempted upstream calls by outcome",
			},
			[]string{"endpoint", "outcome"},
		),
	}
}

// RecordBreakerState records a breaker state transition.
func (m *Metrics) RecordBreakerState(endpoint string, state State) {
	m.BreakerState.WithLabelValues(endpoint).Set(float64(state))
}

// RecordRetry records one retry attempt.
func (m *Metrics) RecordRetry(endpoint string) {
	m.RetriesTotal.WithLabelValues(endpoint).Inc()
}

// RecordShortCircuit records a fail-fast rejection.
func (m *Metrics) RecordShortCircuit(endpoint string) {
	m.ShortCircuitsTotal.WithLabelValues(endpoint).Inc()
}

// RecordAttempt records an attempted upstream call and its outcome.
func (m *Metrics) RecordAttempt(endpoint string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case IsTransient(err):
		outcome = "transient_failure"
	default:
		outcome = "failure"
	}
	m.AttemptsTotal.WithLabelValues(endpoint, outcome).Inc()
}
