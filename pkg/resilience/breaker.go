package resilience

import (
	"log/slog"
	"sync"
	"time"
)

// State is the circuit breaker state for one upstream endpoint.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker is a circuit breaker scoped to a single upstream endpoint.
// The failure counter and state tag transition together under one mutex.
type Breaker struct {
	name      string
	threshold int
	openFor   time.Duration
	logger    *slog.Logger
	metrics   *Metrics
	now       func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// NewBreaker creates a closed breaker that opens after threshold
// consecutive transient failures and stays open for openFor.
func NewBreaker(name string, threshold int, openFor time.Duration, logger *slog.Logger, metrics *Metrics) *Breaker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Breaker{
		name:      name,
		threshold: threshold,
		openFor:   openFor,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// State returns the current breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Allow reports whether a call may proceed. While open it fails fast with
// ErrCircuitOpen; once the open window has elapsed it admits exactly one
// trial call, and concurrent callers keep failing fast until that trial
// resolves. The returned flag marks the admitted call as that trial and
// must be passed back to Record.
func (b *Breaker) Allow() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return false, nil
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.openFor {
			return false, ErrCircuitOpen
		}
		b.transition(StateHalfOpen)
		b.probing = true
		return true, nil
	case StateHalfOpen:
		if b.probing {
			return false, ErrCircuitOpen
		}
		b.probing = true
		return true, nil
	}
	return false, nil
}

// Record feeds the outcome of an attempted call back into the breaker.
// Only the admitted trial call decides what a half-open breaker does next:
// its success closes the breaker, any failure reopens it for a fresh
// window. Outcomes of calls admitted before the breaker opened are ignored
// outside the closed state, where only transient failures advance the trip
// counter.
func (b *Breaker) Record(err error, trial bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if trial {
		b.probing = false
		if b.state != StateHalfOpen {
			return
		}
		if err == nil {
			b.transition(StateClosed)
		} else {
			b.transition(StateOpen)
			b.openedAt = b.now()
		}
		b.failures = 0
		return
	}

	if b.state != StateClosed {
		return
	}
	if err == nil {
		b.failures = 0
		return
	}
	if IsTransient(err) {
		b.failures++
		if b.failures >= b.threshold {
			b.transition(StateOpen)
			b.openedAt = b.now()
		}
	}
}

// transition must be called with the mutex held.
func (b *Breaker) transition(next State) {
	if b.state == next {
		return
	}
	b.logger.Warn("circuit breaker state changed",
		"endpoint", b.name, "from", b.state.String(), "to", next.String())
	b.state = next
	if b.metrics != nil {
		b.metrics.RecordBreakerState(b.name, next)
	}
}
