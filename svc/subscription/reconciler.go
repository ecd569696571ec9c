package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/billing"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
)

// Outcome describes how an event was handled. Every outcome except a
// returned error is acknowledged with success so the provider stops
// redelivering.
type Outcome string

const (
	// OutcomeApplied means the event mutated subscription state.
	OutcomeApplied Outcome = "applied"
	// OutcomeDuplicate means the event ID was already processed.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeStale means the event described older state than stored and
	// was intentionally discarded. Its ID is still claimed so redelivery
	// stays a no-op.
	OutcomeStale Outcome = "stale"
	// OutcomeSkipped means the event type (or embedded status) has no
	// transition; acknowledged and dropped.
	OutcomeSkipped Outcome = "skipped"
)

// Apply reconciles one verified billing event into subscription state.
//
// The idempotency claim, the subscription upsert, and the profile
// projection update run in one transaction. Transient store errors
// propagate to the caller, which must answer 5xx so the provider
// redelivers the same event ID; the rolled-back claim will re-admit it.
func (s *Service) Apply(ctx context.Context, event *billing.Event) (Outcome, error) {
	if !event.Type.Known() {
		s.log.InfoContext(ctx, "dropping unsupported billing event",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
		)
		return OutcomeSkipped, nil
	}

	outcome := OutcomeApplied
	var notify func(context.Context)

	err := s.store.InTx(ctx, func(tx Tx) error {
		if err := tx.ClaimEvent(ctx, event.ID); err != nil {
			return err
		}

		var err error
		outcome, notify, err = s.transition(ctx, tx, event)
		return err
	})

	if errors.Is(err, ErrEventAlreadyProcessed) {
		s.log.DebugContext(ctx, "duplicate billing event",
			slog.String("event_id", event.ID),
		)
		return OutcomeDuplicate, nil
	}
	if err != nil {
		return "", fmt.Errorf("reconcile event %s: %w", event.ID, err)
	}

	if outcome == OutcomeStale {
		s.log.InfoContext(ctx, "discarding stale billing event",
			slog.String("event_id", event.ID),
			slog.String("subscription_id", event.Subscription.ExternalID),
		)
	}

	// Lifecycle emails fire after commit and never affect the result.
	// WithoutCancel keeps the dispatch alive past the webhook response.
	if notify != nil {
		go notify(context.WithoutCancel(ctx))
	}

	return outcome, nil
}

// transition applies the state machine for one event inside tx. It
// returns the outcome and an optional post-commit notification.
func (s *Service) transition(ctx context.Context, tx Tx, event *billing.Event) (Outcome, func(context.Context), error) {
	data := event.Subscription

	existing, err := tx.GetSubscription(ctx, data.ExternalID)
	if err != nil && !errors.Is(err, ErrSubscriptionNotFound) {
		return "", nil, err
	}

	switch event.Type {
	case billing.EventCheckoutCompleted:
		return s.applyCheckout(ctx, tx, existing, data)

	case billing.EventSubscriptionUpdated:
		if existing == nil {
			// Update delivered before the checkout event that creates the
			// record. Fail transiently: redelivery after the checkout
			// lands will apply cleanly.
			return "", nil, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, data.ExternalID)
		}
		return s.applyUpdate(ctx, tx, existing, data)

	case billing.EventSubscriptionDeleted:
		if existing == nil {
			return "", nil, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, data.ExternalID)
		}
		return s.applyDelete(ctx, tx, existing, data)
	}

	return OutcomeSkipped, nil, nil
}

func (s *Service) applyCheckout(ctx context.Context, tx Tx, existing *Subscription, data billing.SubscriptionData) (Outcome, func(context.Context), error) {
	p, err := plan.Parse(data.Plan)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownEventPlan, data.Plan)
	}

	// A second checkout event with a distinct event ID can describe the
	// same subscription; fall back to update semantics instead of failing.
	if existing != nil {
		if stale(existing, data) {
			return OutcomeStale, nil, nil
		}
		// Canceled is as terminal here as in update semantics: a redelivered
		// checkout for the same or an older period stays buried. Only a
		// strictly newer period end is a fresh billing cycle.
		if existing.Status == StatusCanceled && !data.CurrentPeriodEnd.After(existing.CurrentPeriodEnd) {
			return OutcomeStale, nil, nil
		}
		sub := *existing
		sub.Plan = p
		sub.Status = StatusActive
		sub.CurrentPeriodStart = data.CurrentPeriodStart
		sub.CurrentPeriodEnd = data.CurrentPeriodEnd
		sub.CancelAtPeriodEnd = data.CancelAtPeriodEnd
		sub.UpdatedAt = time.Now().UTC()
		if err := tx.UpsertSubscription(ctx, &sub); err != nil {
			return "", nil, err
		}
		if err := tx.SetProfilePlan(ctx, sub.UserID, p, data.CustomerID); err != nil {
			return "", nil, err
		}
		return OutcomeApplied, nil, nil
	}

	now := time.Now().UTC()
	sub := &Subscription{
		ExternalID:         data.ExternalID,
		UserID:             data.UserID,
		Plan:               p,
		Status:             StatusActive,
		CurrentPeriodStart: data.CurrentPeriodStart,
		CurrentPeriodEnd:   data.CurrentPeriodEnd,
		CancelAtPeriodEnd:  data.CancelAtPeriodEnd,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := tx.UpsertSubscription(ctx, sub); err != nil {
		return "", nil, err
	}
	if err := tx.SetProfilePlan(ctx, sub.UserID, p, data.CustomerID); err != nil {
		return "", nil, err
	}

	userID := sub.UserID
	notify := func(ctx context.Context) {
		s.notifier.SubscriptionConfirmed(ctx, userID, p)
	}
	return OutcomeApplied, notify, nil
}

func (s *Service) applyUpdate(ctx context.Context, tx Tx, existing *Subscription, data billing.SubscriptionData) (Outcome, func(context.Context), error) {
	if stale(existing, data) {
		return OutcomeStale, nil, nil
	}
	// A canceled subscription is terminal; whatever an update says, the
	// staleness check above plus this guard keep it buried.
	if existing.Status == StatusCanceled {
		return OutcomeStale, nil, nil
	}

	status, ok := parseStatus(data.Status)
	if !ok {
		s.log.InfoContext(ctx, "dropping event with unsupported subscription status",
			slog.String("subscription_id", data.ExternalID),
			slog.String("status", data.Status),
		)
		return OutcomeSkipped, nil, nil
	}

	if status == StatusCanceled {
		return s.applyDelete(ctx, tx, existing, data)
	}

	sub := *existing
	sub.Status = status
	sub.CurrentPeriodStart = data.CurrentPeriodStart
	sub.CurrentPeriodEnd = data.CurrentPeriodEnd
	sub.CancelAtPeriodEnd = data.CancelAtPeriodEnd
	sub.UpdatedAt = time.Now().UTC()

	if p, err := plan.Parse(data.Plan); err == nil {
		sub.Plan = p
	}

	if err := tx.UpsertSubscription(ctx, &sub); err != nil {
		return "", nil, err
	}

	// Only an active subscription moves the projection. PastDue and
	// Incomplete keep the previous entitlement: the grace period lasts
	// until the provider cancels.
	if status == StatusActive {
		if err := tx.SetProfilePlan(ctx, sub.UserID, sub.Plan, data.CustomerID); err != nil {
			return "", nil, err
		}
	}

	return OutcomeApplied, nil, nil
}

func (s *Service) applyDelete(ctx context.Context, tx Tx, existing *Subscription, data billing.SubscriptionData) (Outcome, func(context.Context), error) {
	if existing.Status == StatusCanceled {
		// Already terminal; nothing to change but the claim still commits.
		return OutcomeStale, nil, nil
	}
	// No staleness check here: a mid-cycle cancellation legitimately
	// carries an earlier period end than the stored record.

	sub := *existing
	sub.Status = StatusCanceled
	sub.UpdatedAt = time.Now().UTC()
	if !data.CurrentPeriodEnd.IsZero() {
		sub.CurrentPeriodEnd = data.CurrentPeriodEnd
	}

	if err := tx.UpsertSubscription(ctx, &sub); err != nil {
		return "", nil, err
	}
	if err := tx.SetProfilePlan(ctx, sub.UserID, plan.Free, data.CustomerID); err != nil {
		return "", nil, err
	}

	userID := sub.UserID
	notify := func(ctx context.Context) {
		s.notifier.SubscriptionCanceled(ctx, userID)
	}
	return OutcomeApplied, notify, nil
}

// stale reports whether the event's embedded period is older than the
// stored record. Arrival order is meaningless for webhooks; the provider's
// period timestamps are the only usable ordering.
func stale(existing *Subscription, data billing.SubscriptionData) bool {
	if data.CurrentPeriodEnd.IsZero() {
		return false
	}
	return data.CurrentPeriodEnd.Before(existing.CurrentPeriodEnd)
}
