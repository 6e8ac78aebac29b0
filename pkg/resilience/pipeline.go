package resilience

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Pipeline wraps an outbound call with retry-with-backoff around a circuit
// breaker. The breaker is consulted on every attempt, retries included, so
// a breaker that opens mid-sequence short-circuits the remaining attempts.
type Pipeline struct {
	breaker     *Breaker
	maxRetries  int
	backoffBase time.Duration
	logger      *slog.Logger
	metrics     *Metrics
	name        string
}

// NewPipeline creates a pipeline for one upstream endpoint. maxRetries is
// the number of additional attempts after the first; the delay before
// retry n is backoffBase * 2^n (1s base gives 2s, 4s, 8s).
func NewPipeline(name string, maxRetries int, backoffBase time.Duration, breakerThreshold int, breakerOpenFor time.Duration, logger *slog.Logger, metrics *Metrics) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		breaker:     NewBreaker(name, breakerThreshold, breakerOpenFor, logger, metrics),
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		logger:      logger,
		metrics:     metrics,
		name:        name,
	}
}

// Breaker exposes the pipeline's circuit breaker, mainly for tests and
// observability.
func (p *Pipeline) Breaker() *Breaker {
	return p.breaker
}

// Do executes attempt under the pipeline's retry and breaker policies.
// Transient failures are retried with exponential backoff; terminal
// failures propagate immediately. Cancellation of ctx aborts backoff
// waits promptly.
func Do[T any](ctx context.Context, p *Pipeline, attempt func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for n := 0; n <= p.maxRetries; n++ {
		if n > 0 {
			delay := p.backoffBase << n
			p.logger.Warn("retrying upstream call",
				"endpoint", p.name, "attempt", n, "delay", delay, "error", lastErr)
			if p.metrics != nil {
				p.metrics.RecordRetry(p.name)
			}
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		trial, err := p.breaker.Allow()
		if err != nil {
			if p.metrics != nil {
				p.metrics.RecordShortCircuit(p.name)
			}
			return zero, err
		}

		result, err := attempt(ctx)
		p.breaker.Record(err, trial)
		if p.metrics != nil {
			p.metrics.RecordAttempt(p.name, err)
		}
		if err == nil {
			return result, nil
		}
		if !IsTransient(err) {
			return zero, err
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		lastErr = err
	}

	return zero, fmt.Errorf("retries exhausted after %d attempts: %w", p.maxRetries+1, lastErr)
}
