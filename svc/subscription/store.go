package subscription

import (
	"context"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
)

// Store defines subscription persistence. InTx is the only mutation entry
// point: every reconciliation runs inside it so the idempotency claim,
// the subscription write, and the profile projection commit or roll back
// together. Partial application is the one outcome the design must never
// produce.
type Store interface {
	// InTx runs fn atomically. Any error from fn aborts the transaction
	// and is returned unchanged.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// GetSubscription returns the record for a provider subscription ID.
	// Returns ErrSubscriptionNotFound when absent.
	GetSubscription(ctx context.Context, externalID string) (*Subscription, error)

	// GetSubscriptionByUser returns the user's most recent non-canceled
	// subscription, or ErrSubscriptionNotFound.
	GetSubscriptionByUser(ctx context.Context, userID string) (*Subscription, error)

	// GetProfile returns the user's entitlement projection.
	// Returns ErrProfileNotFound when absent.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

// Tx is the transactional view used during reconciliation.
type Tx interface {
	// ClaimEvent records the event ID in the idempotency ledger.
	// Returns ErrEventAlreadyProcessed if a concurrent or earlier delivery
	// already claimed it. The claim rolls back with the transaction.
	ClaimEvent(ctx context.Context, eventID string) error

	// GetSubscription reads a record inside the transaction, locking it
	// against concurrent reconciliation of the same subscription.
	// Returns ErrSubscriptionNotFound when absent.
	GetSubscription(ctx context.Context, externalID string) (*Subscription, error)

	// UpsertSubscription inserts or updates the record keyed by ExternalID.
	UpsertSubscription(ctx context.Context, sub *Subscription) error

	// SetProfilePlan updates the entitlement projection, creating the
	// profile row if the user has none yet. An empty customerID leaves the
	// stored customer handle untouched.
	SetProfilePlan(ctx context.Context, userID string, p plan.Plan, customerID string) error
}
