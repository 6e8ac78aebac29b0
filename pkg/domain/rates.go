package domain

import "time"

// ExchangeRateSnapshot holds the rates for one base currency at one point
// in time, as returned by an upstream provider. Snapshots are immutable
// once constructed; refreshing a cache entry replaces the snapshot rather
// than editing it.
type ExchangeRateSnapshot struct {
	Amount float64            `json:"amount,omitempty"`
	Base   string             `json:"base"`
	Date   time.Time          `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// ConversionResult is the outcome of converting an amount between two
// currencies. The converted value comes scaled directly from the upstream.
type ConversionResult struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Converted float64 `json:"converted"`
}
