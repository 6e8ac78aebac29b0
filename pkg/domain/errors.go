package domain

import "errors"

// Domain errors for currency proxy operations. Handlers map these to HTTP
// status codes with errors.Is; the services wrap them with operation
// context but never change their kind.
var (
	// ErrCurrencyNotAllowed indicates a conversion involving a currency
	// from the excluded list. Never retried.
	ErrCurrencyNotAllowed = errors.New("currency not allowed")

	// ErrRateNotFound indicates a well-formed upstream response that is
	// missing the requested rate.
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrUnsupportedProvider indicates an unknown provider name.
	ErrUnsupportedProvider = errors.New("currency provider not supported")

	// ErrUpstreamUnavailable indicates the upstream kept failing after the
	// retry budget and breaker policy were exhausted.
	ErrUpstreamUnavailable = errors.New("exchange rate upstream unavailable")

	// ErrMalformedResponse indicates an upstream body that could not be
	// parsed. A broken body won't fix itself, so this is never retried.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
