package ratelimit

import (
	"context"
	"time"
)

// Config defines a fixed-window limit.
type Config struct {
	Limit  int           // maximum requests per window
	Window time.Duration // window length
}

// Result is the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time // when the current window expires
}

// RetryAfter returns how long to wait before the next request.
// Zero when the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Store defines the counter backend. IncrWithTTL must be atomic so that
// multiple service replicas sharing a store count consistently.
type Store interface {
	// IncrWithTTL increments the window counter for key, starting the
	// window (and its expiry) on first increment. Returns the counter
	// value after the increment and when the window resets.
	IncrWithTTL(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)

	// Reset clears the counter for key.
	Reset(ctx context.Context, key string) error
}

// Key composes a store key from a bucket name and a caller identity
// (user ID when authenticated, otherwise a network identifier).
func Key(bucket, identity string) string {
	return bucket + ":" + identity
}
