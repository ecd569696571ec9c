package quota

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
)

// Ledger enforces daily plan quotas on metered operations.
type Ledger struct {
	store   Store
	catalog *plan.Catalog
	log     *slog.Logger
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithLogger sets the ledger's logger.
func WithLogger(log *slog.Logger) LedgerOption {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLedger creates a quota ledger. Panics on nil dependencies to fail
// fast during initialization.
func NewLedger(store Store, catalog *plan.Catalog, opts ...LedgerOption) *Ledger {
	if store == nil {
		panic("quota: Store is required")
	}
	if catalog == nil {
		panic("quota: plan catalog is required")
	}

	l := &Ledger{
		store:   store,
		catalog: catalog,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CheckAndIncrement admits one metered operation for the user if their
// daily quota allows it. The check and the increment are a single atomic
// store operation, so concurrent calls never push the counter past the
// limit. On store failure the error is returned and the caller must deny.
func (l *Ledger) CheckAndIncrement(ctx context.Context, userID string, p plan.Plan, day Day) (*Decision, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	limit := l.catalog.DailyLimit(p)
	if limit <= 0 {
		return &Decision{Allowed: false, Limit: limit}, nil
	}

	count, applied, err := l.store.IncrementIfBelow(ctx, userID, day, limit)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	if !applied {
		l.log.DebugContext(ctx, "quota exceeded",
			slog.String("user_id", userID),
			slog.String("plan", p.String()),
			slog.Int64("limit", limit),
		)
		return &Decision{Allowed: false, Limit: limit, Used: count}, nil
	}

	return &Decision{
		Allowed:   true,
		Limit:     limit,
		Used:      count,
		Remaining: limit - count,
	}, nil
}

// Usage returns the current counter and limit without consuming quota.
func (l *Ledger) Usage(ctx context.Context, userID string, p plan.Plan, day Day) (*Decision, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	limit := l.catalog.DailyLimit(p)
	count, err := l.store.Count(ctx, userID, day)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return &Decision{
		Allowed:   count < limit,
		Limit:     limit,
		Used:      count,
		Remaining: max(limit-count, 0),
	}, nil
}

// ListActive returns all users with nonzero usage for the day.
func (l *Ledger) ListActive(ctx context.Context, day Day) ([]Usage, error) {
	usage, err := l.store.ListActive(ctx, day)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return usage, nil
}
