package subscription

import (
	"time"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
)

// Status is the reconciled subscription state.
type Status string

const (
	StatusActive     Status = "active"
	StatusPastDue    Status = "past_due"
	StatusIncomplete Status = "incomplete"
	StatusCanceled   Status = "canceled"
)

// parseStatus maps a provider status string onto the internal state set.
// Returns false for statuses the state machine has no transition for.
func parseStatus(s string) (Status, bool) {
	switch s {
	case "active", "trialing":
		// Trialing grants the same entitlement as active.
		return StatusActive, true
	case "past_due":
		return StatusPastDue, true
	case "incomplete":
		return StatusIncomplete, true
	case "canceled", "cancelled":
		return StatusCanceled, true
	}
	return "", false
}

// Subscription is the durable record of a provider subscription.
// Keyed by the provider's immutable subscription ID; updated in place on
// every lifecycle event and logically retired (canceled), never deleted.
type Subscription struct {
	ExternalID         string // provider's subscription ID, immutable once set
	UserID             string
	Plan               plan.Plan
	Status             Status
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Entitled reports whether the subscription still grants its plan.
// PastDue and Incomplete keep the entitlement: the grace period lasts
// until the provider explicitly cancels.
func (s *Subscription) Entitled() bool {
	switch s.Status {
	case StatusActive, StatusPastDue, StatusIncomplete:
		return true
	}
	return false
}

// Profile is the entitlement projection: the denormalized plan field read
// by every quota check. Must always equal the plan of the user's most
// recent non-canceled subscription, or free if none exists.
type Profile struct {
	UserID       string
	Plan         plan.Plan
	CustomerID   string // provider's opaque customer handle
	Email        string
	NotifyOptOut bool
	UpdatedAt    time.Time
}

// CheckoutOptions carries optional checkout session parameters.
type CheckoutOptions struct {
	Email      string
	SuccessURL string
	CancelURL  string
}

// CheckoutLink is a hosted checkout session created by the provider.
type CheckoutLink struct {
	URL       string
	SessionID string
	ExpiresAt time.Time
}

// PortalLink is a pre-authenticated customer portal session.
type PortalLink struct {
	URL       string
	CancelURL string
	ExpiresAt time.Time
}
