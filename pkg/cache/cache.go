package cache

import "time"

// RateCache is a short-horizon memoizer for upstream responses. Both
// methods must be safe for concurrent use. Get treats an expired entry as
// not found even if it has not been physically removed yet; Set overwrites
// unconditionally with a TTL relative to call time.
type RateCache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}
