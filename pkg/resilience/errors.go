package resilience

import "errors"

// ErrCircuitOpen is returned without attempting the call while the breaker
// is open or a half-open trial is already in flight. It never counts as a
// new failure against the breaker.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return "transient: " + e.err.Error()
}

func (e *transientError) Unwrap() error {
	return e.err
}

// Transient marks an error as recoverable by retrying: network failures
// and 5xx/timeout upstream responses. Everything else is terminal.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked with Transient.
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}
