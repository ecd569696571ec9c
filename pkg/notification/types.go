package notification

import (
	"context"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

// Kind identifies a notification. Each kind is keyed independently in the
// suppression store.
type Kind string

const (
	KindQuotaWarning80        Kind = "quota_warning_80"
	KindQuotaWarning100       Kind = "quota_warning_100"
	KindWelcome               Kind = "welcome"
	KindSubscriptionConfirmed Kind = "subscription_confirmation"
	KindSubscriptionCanceled  Kind = "subscription_cancellation"
)

// SuppressionStore records which (user, kind, day) notifications have
// been handled. MarkIfFirst must be atomic: exactly one concurrent caller
// wins the claim.
type SuppressionStore interface {
	// MarkIfFirst records the key and reports whether this caller was the
	// first to do so today. A false return means already handled.
	MarkIfFirst(ctx context.Context, userID string, kind Kind, day quota.Day) (bool, error)
}

// Recipient is what the scheduler needs to know about a user before
// sending: where to deliver and whether they opted out.
type Recipient struct {
	Email  string
	OptOut bool
}

// RecipientFunc resolves a user's delivery preference.
type RecipientFunc func(ctx context.Context, userID string) (Recipient, error)

// PlanFunc resolves a user's current plan for the sweep.
type PlanFunc func(ctx context.Context, userID string) (plan.Plan, error)

// Summary reports a sweep run.
type Summary struct {
	UsersChecked int      `json:"usersChecked"`
	WarningsSent int      `json:"warningsSent"`
	Errors       []string `json:"errors"`
}
