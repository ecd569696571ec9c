package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/email"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/notification"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

type capturingSender struct {
	mu   sync.Mutex
	sent []email.Message
	fail bool
}

func (s *capturingSender) Send(_ context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *capturingSender) messages() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.sent...)
}

func staticRecipient(addr string, optOut bool) notification.RecipientFunc {
	return func(context.Context, string) (notification.Recipient, error) {
		return notification.Recipient{Email: addr, OptOut: optOut}, nil
	}
}

func TestScheduler_QuotaThreshold_DedupPerDay(t *testing.T) {
	t.Parallel()

	sender := &capturingSender{}
	sched := notification.NewScheduler(
		notification.NewMemorySuppressionStore(),
		sender,
		staticRecipient("user@example.com", false),
	)
	day := quota.Day("2026-08-29")

	sent, err := sched.QuotaThreshold(context.Background(), "u1", 8, 10, day)
	require.NoError(t, err)
	assert.True(t, sent)

	// Re-evaluating the same crossing the same day must not send again.
	sent, err = sched.QuotaThreshold(context.Background(), "u1", 9, 10, day)
	require.NoError(t, err)
	assert.False(t, sent)

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, string(notification.KindQuotaWarning80), msgs[0].Tag)
}

func TestScheduler_QuotaThreshold_BothBoundariesSameDay(t *testing.T) {
	t.Parallel()

	sender := &capturingSender{}
	sched := notification.NewScheduler(
		notification.NewMemorySuppressionStore(),
		sender,
		staticRecipient("user@example.com", false),
	)
	day := quota.Day("2026-08-29")

	// Hitting 100% directly crosses both boundaries at once; each kind is
	// keyed independently so both fire.
	sent, err := sched.QuotaThreshold(context.Background(), "u1", 10, 10, day)
	require.NoError(t, err)
	assert.True(t, sent)

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	tags := []string{msgs[0].Tag, msgs[1].Tag}
	assert.Contains(t, tags, string(notification.KindQuotaWarning80))
	assert.Contains(t, tags, string(notification.KindQuotaWarning100))
}

func TestScheduler_QuotaThreshold_BelowBoundary(t *testing.T) {
	t.Parallel()

	sender := &capturingSender{}
	sched := notification.NewScheduler(
		notification.NewMemorySuppressionStore(),
		sender,
		staticRecipient("user@example.com", false),
	)

	sent, err := sched.QuotaThreshold(context.Background(), "u1", 7, 10, quota.Day("2026-08-29"))
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.messages())
}

func TestScheduler_OptOutStillClaims(t *testing.T) {
	t.Parallel()

	store := notification.NewMemorySuppressionStore()
	sender := &capturingSender{}
	sched := notification.NewScheduler(store, sender, staticRecipient("user@example.com", true))
	day := quota.Day("2026-08-29")

	sent, err := sched.QuotaThreshold(context.Background(), "u1", 8, 10, day)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.messages())

	// The key is consumed even though nothing went out, so a later sweep
	// does not re-evaluate the user.
	first, err := store.MarkIfFirst(context.Background(), "u1", notification.KindQuotaWarning80, day)
	require.NoError(t, err)
	assert.False(t, first)
}

func TestScheduler_SendFailureKeepsClaim(t *testing.T) {
	t.Parallel()

	sender := &capturingSender{fail: true}
	sched := notification.NewScheduler(
		notification.NewMemorySuppressionStore(),
		sender,
		staticRecipient("user@example.com", false),
	)
	day := quota.Day("2026-08-29")

	sent, err := sched.QuotaThreshold(context.Background(), "u1", 8, 10, day)
	require.NoError(t, err)
	assert.False(t, sent)

	// At-most-one-attempt: the provider coming back does not earn a retry.
	sender.fail = false
	sent, err = sched.QuotaThreshold(context.Background(), "u1", 8, 10, day)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.messages())
}

func TestScheduler_LifecycleKinds(t *testing.T) {
	t.Parallel()

	sender := &capturingSender{}
	sched := notification.NewScheduler(
		notification.NewMemorySuppressionStore(),
		sender,
		staticRecipient("user@example.com", false),
	)

	sched.SubscriptionConfirmed(context.Background(), "u1", plan.Premium)
	sched.SubscriptionCanceled(context.Background(), "u1")
	require.NoError(t, sched.Welcome(context.Background(), "u1"))

	msgs := sender.messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, string(notification.KindSubscriptionConfirmed), msgs[0].Tag)
	assert.Equal(t, string(notification.KindSubscriptionCanceled), msgs[1].Tag)
	assert.Equal(t, string(notification.KindWelcome), msgs[2].Tag)
}

func TestSweeper_Run(t *testing.T) {
	t.Parallel()

	catalog := plan.DefaultCatalog()
	quotaStore := quota.NewMemoryStore()
	ledger := quota.NewLedger(quotaStore, catalog)
	day := quota.Day("2026-08-29")

	// u1 at the free-tier limit, u2 well below it, u3 crossing 80%.
	for range 10 {
		_, _, err := quotaStore.IncrementIfBelow(context.Background(), "u1", day, 10)
		require.NoError(t, err)
	}
	_, _, err := quotaStore.IncrementIfBelow(context.Background(), "u2", day, 10)
	require.NoError(t, err)
	for range 9 {
		_, _, err := quotaStore.IncrementIfBelow(context.Background(), "u3", day, 10)
		require.NoError(t, err)
	}

	sender := &capturingSender{}
	sched := notification.NewScheduler(
		notification.NewMemorySuppressionStore(),
		sender,
		staticRecipient("user@example.com", false),
	)
	planFor := func(_ context.Context, userID string) (plan.Plan, error) {
		if userID == "u2" {
			return "", errors.New("profile lookup failed")
		}
		return plan.Free, nil
	}

	sweeper := notification.NewSweeper(sched, ledger, planFor, catalog, nil)

	summary, err := sweeper.Run(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.UsersChecked)
	assert.Equal(t, 2, summary.WarningsSent)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "u2")

	// Second run the same day is a no-op: every claim is already taken.
	summary, err = sweeper.Run(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.UsersChecked)
	assert.Equal(t, 0, summary.WarningsSent)
}
