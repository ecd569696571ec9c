package ratelimit

import "context"

// Limiter is a fixed-window rate limiter over a Store.
type Limiter struct {
	store  Store
	config Config
}

// New creates a Limiter with the given store and window configuration.
func New(store Store, config Config) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if config.Limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if config.Window <= 0 {
		return nil, ErrInvalidWindow
	}

	return &Limiter{store: store, config: config}, nil
}

// Allow records one request against the key's current window and reports
// whether it fits under the limit. The counter still advances on denied
// requests; the window boundary is what resets it.
func (l *Limiter) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	count, resetAt, err := l.store.IncrWithTTL(ctx, key, l.config.Window)
	if err != nil {
		return nil, err
	}

	return &Result{
		Allowed:   count <= int64(l.config.Limit),
		Limit:     l.config.Limit,
		Remaining: max(l.config.Limit-int(count), 0),
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the window for a key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return l.store.Reset(ctx, key)
}
