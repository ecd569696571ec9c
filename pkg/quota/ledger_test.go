package quota_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

const testDay = quota.Day("2026-08-29")

func newLedger(t *testing.T) *quota.Ledger {
	t.Helper()
	return quota.NewLedger(quota.NewMemoryStore(), plan.DefaultCatalog())
}

func TestCheckAndIncrement_FreeTier(t *testing.T) {
	t.Parallel()

	ledger := newLedger(t)
	ctx := context.Background()

	// Free tier allows exactly 10 operations per day.
	for i := 1; i <= 10; i++ {
		decision, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.EqualValues(t, i, decision.Used)
		assert.EqualValues(t, 10-i, decision.Remaining)
	}

	// The 10th call consumed the last unit; the 11th is denied.
	decision, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.EqualValues(t, 10, decision.Limit)
	assert.EqualValues(t, 10, decision.Used)
	assert.EqualValues(t, 0, decision.Remaining)
}

func TestCheckAndIncrement_LastAllowedRequest(t *testing.T) {
	t.Parallel()

	ledger := newLedger(t)
	ctx := context.Background()

	for range 9 {
		_, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
		require.NoError(t, err)
	}

	// count=9: this request is allowed and exhausts the quota.
	decision, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.EqualValues(t, 0, decision.Remaining)

	decision, err = ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.EqualValues(t, 10, decision.Limit)
}

func TestCheckAndIncrement_ConcurrentMonotonicity(t *testing.T) {
	t.Parallel()

	store := quota.NewMemoryStore()
	ledger := quota.NewLedger(store, plan.DefaultCatalog())
	ctx := context.Background()

	const workers = 50
	var allowed atomic.Int64
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
			if err == nil && decision.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	// Allowed results never exceed the limit and the counter never overshoots.
	assert.EqualValues(t, 10, allowed.Load())
	count, err := store.Count(ctx, "user_1", testDay)
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)
}

func TestCheckAndIncrement_DaysAreIndependent(t *testing.T) {
	t.Parallel()

	ledger := newLedger(t)
	ctx := context.Background()

	for range 10 {
		_, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
		require.NoError(t, err)
	}

	// A new calendar day starts a fresh counter; no reset job involved.
	decision, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, quota.Day("2026-08-30"))
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.EqualValues(t, 1, decision.Used)
}

func TestCheckAndIncrement_UsersAreIndependent(t *testing.T) {
	t.Parallel()

	ledger := newLedger(t)
	ctx := context.Background()

	for range 10 {
		_, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
		require.NoError(t, err)
	}

	decision, err := ledger.CheckAndIncrement(ctx, "user_2", plan.Free, testDay)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestCheckAndIncrement_StoreFailureFailsClosed(t *testing.T) {
	t.Parallel()

	ledger := quota.NewLedger(failingStore{}, plan.DefaultCatalog())

	_, err := ledger.CheckAndIncrement(context.Background(), "user_1", plan.Free, testDay)
	assert.ErrorIs(t, err, quota.ErrStoreUnavailable)
}

func TestCheckAndIncrement_EmptyUser(t *testing.T) {
	t.Parallel()

	ledger := newLedger(t)
	_, err := ledger.CheckAndIncrement(context.Background(), "", plan.Free, testDay)
	assert.ErrorIs(t, err, quota.ErrUserRequired)
}

func TestUsage(t *testing.T) {
	t.Parallel()

	ledger := newLedger(t)
	ctx := context.Background()

	for range 4 {
		_, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
		require.NoError(t, err)
	}

	usage, err := ledger.Usage(ctx, "user_1", plan.Free, testDay)
	require.NoError(t, err)
	assert.True(t, usage.Allowed)
	assert.EqualValues(t, 4, usage.Used)
	assert.EqualValues(t, 6, usage.Remaining)
	assert.Equal(t, 40, usage.PercentUsed())

	// Usage is read-only.
	again, err := ledger.Usage(ctx, "user_1", plan.Free, testDay)
	require.NoError(t, err)
	assert.EqualValues(t, 4, again.Used)
}

func TestListActive(t *testing.T) {
	t.Parallel()

	ledger := newLedger(t)
	ctx := context.Background()

	_, err := ledger.CheckAndIncrement(ctx, "user_1", plan.Free, testDay)
	require.NoError(t, err)
	_, err = ledger.CheckAndIncrement(ctx, "user_2", plan.Premium, testDay)
	require.NoError(t, err)
	_, err = ledger.CheckAndIncrement(ctx, "user_3", plan.Free, quota.Day("2026-08-30"))
	require.NoError(t, err)

	usage, err := ledger.ListActive(ctx, testDay)
	require.NoError(t, err)

	users := make([]string, 0, len(usage))
	for _, u := range usage {
		users = append(users, u.UserID)
	}
	assert.ElementsMatch(t, []string{"user_1", "user_2"}, users)
}

func TestDecision_PercentUsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    quota.Decision
		want int
	}{
		{name: "zero usage", d: quota.Decision{Limit: 10}, want: 0},
		{name: "partial", d: quota.Decision{Limit: 10, Used: 8}, want: 80},
		{name: "full", d: quota.Decision{Limit: 10, Used: 10}, want: 100},
		{name: "capped", d: quota.Decision{Limit: 10, Used: 15}, want: 100},
		{name: "zero limit", d: quota.Decision{Limit: 0, Used: 0}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.d.PercentUsed())
		})
	}
}

type failingStore struct{}

func (failingStore) IncrementIfBelow(context.Context, string, quota.Day, int64) (int64, bool, error) {
	return 0, false, errors.New("connection refused")
}

func (failingStore) Count(context.Context, string, quota.Day) (int64, error) {
	return 0, errors.New("connection refused")
}

func (failingStore) ListActive(context.Context, quota.Day) ([]quota.Usage, error) {
	return nil, errors.New("connection refused")
}
