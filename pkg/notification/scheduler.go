package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/email"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

// Scheduler owns notification dedup and dispatch.
type Scheduler struct {
	store     SuppressionStore
	sender    email.Sender
	recipient RecipientFunc
	log       *slog.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the scheduler logger.
func WithLogger(log *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// NewScheduler creates a notification scheduler. Panics on nil
// dependencies to fail fast during initialization.
func NewScheduler(store SuppressionStore, sender email.Sender, recipient RecipientFunc, opts ...SchedulerOption) *Scheduler {
	if store == nil {
		panic("notification: SuppressionStore is required")
	}
	if sender == nil {
		panic("notification: email sender is required")
	}
	if recipient == nil {
		panic("notification: recipient resolver is required")
	}

	s := &Scheduler{
		store:     store,
		sender:    sender,
		recipient: recipient,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QuotaThreshold evaluates the 80% and 100% usage boundaries for a user
// and fires each crossed boundary at most once per day. Returns whether a
// warning email was actually sent, for sweep accounting.
func (s *Scheduler) QuotaThreshold(ctx context.Context, userID string, used, limit int64, day quota.Day) (sent bool, err error) {
	if limit <= 0 {
		return false, nil
	}

	pct := used * 100 / limit

	if pct >= 100 {
		ok, err := s.deliver(ctx, userID, KindQuotaWarning100, day,
			"You've reached your daily quota",
			fmt.Sprintf("<p>You have used %d of %d daily operations. Upgrade your plan to keep going today.</p>", used, limit))
		if err != nil {
			return sent, err
		}
		sent = sent || ok
	}
	if pct >= 80 {
		ok, err := s.deliver(ctx, userID, KindQuotaWarning80, day,
			"You're approaching your daily quota",
			fmt.Sprintf("<p>You have used %d of %d daily operations (%d%%).</p>", used, limit, pct))
		if err != nil {
			return sent, err
		}
		sent = sent || ok
	}

	return sent, nil
}

// SubscriptionConfirmed sends the post-checkout confirmation.
// Implements the subscription service's Notifier interface.
func (s *Scheduler) SubscriptionConfirmed(ctx context.Context, userID string, p plan.Plan) {
	_, err := s.deliver(ctx, userID, KindSubscriptionConfirmed, quota.Today(),
		"Your subscription is active",
		fmt.Sprintf("<p>Welcome to the %s plan. Your new limits are live now.</p>", p))
	if err != nil {
		s.log.WarnContext(ctx, "failed to handle subscription confirmation",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

// SubscriptionCanceled sends the cancellation notice.
func (s *Scheduler) SubscriptionCanceled(ctx context.Context, userID string) {
	_, err := s.deliver(ctx, userID, KindSubscriptionCanceled, quota.Today(),
		"Your subscription has been canceled",
		"<p>Your subscription was canceled. You're back on the free plan.</p>")
	if err != nil {
		s.log.WarnContext(ctx, "failed to handle subscription cancellation",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

// Welcome sends the first-signup email.
func (s *Scheduler) Welcome(ctx context.Context, userID string) error {
	_, err := s.deliver(ctx, userID, KindWelcome, quota.Today(),
		"Welcome aboard",
		"<p>Your account is ready.</p>")
	return err
}

// deliver is the single dedup-then-send path. The suppression claim
// happens first and stands no matter what: preference opt-outs and
// transport failures both count as handled for the day.
func (s *Scheduler) deliver(ctx context.Context, userID string, kind Kind, day quota.Day, subject, bodyHTML string) (bool, error) {
	first, err := s.store.MarkIfFirst(ctx, userID, kind, day)
	if err != nil {
		return false, fmt.Errorf("claim notification %s/%s: %w", userID, kind, err)
	}
	if !first {
		return false, nil
	}

	rcpt, err := s.recipient(ctx, userID)
	if err != nil {
		// Claim stands; log and move on rather than risking a double send
		// on retry.
		s.log.WarnContext(ctx, "failed to resolve notification recipient",
			slog.String("user_id", userID),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
		return false, nil
	}
	if rcpt.OptOut || rcpt.Email == "" {
		s.log.DebugContext(ctx, "notification suppressed by preference",
			slog.String("user_id", userID),
			slog.String("kind", string(kind)),
		)
		return false, nil
	}

	if err := s.sender.Send(ctx, email.Message{
		To:       rcpt.Email,
		Subject:  subject,
		BodyHTML: bodyHTML,
		Tag:      string(kind),
	}); err != nil {
		// At-most-one-attempt: dispatch failure never unwinds the claim
		// and never propagates into subscription or quota state.
		s.log.WarnContext(ctx, "notification dispatch failed",
			slog.String("user_id", userID),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
		return false, nil
	}

	return true, nil
}
