package quota

import "context"

// Store defines the counter storage backend. Both operations the ledger
// depends on for correctness must be atomic at the store level; the
// service layer adds no locking of its own.
type Store interface {
	// IncrementIfBelow atomically increments the counter for (userID, day)
	// when its current value is below limit. Returns the counter value
	// after the operation and whether the increment was applied.
	IncrementIfBelow(ctx context.Context, userID string, day Day, limit int64) (count int64, applied bool, err error)

	// Count returns the current counter value, zero if absent.
	Count(ctx context.Context, userID string, day Day) (int64, error)

	// ListActive returns every user with a nonzero counter for the day.
	// Feeds the periodic notification sweep.
	ListActive(ctx context.Context, day Day) ([]Usage, error)
}
