package plan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    plan.Plan
		wantErr error
	}{
		{name: "free", input: "free", want: plan.Free},
		{name: "premium", input: "premium", want: plan.Premium},
		{name: "pro", input: "pro", want: plan.Pro},
		{name: "unknown", input: "enterprise", wantErr: plan.ErrUnknownPlan},
		{name: "empty", input: "", wantErr: plan.ErrUnknownPlan},
		{name: "case sensitive", input: "Free", wantErr: plan.ErrUnknownPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := plan.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := plan.DefaultCatalog()
	assert.EqualValues(t, 10, c.DailyLimit(plan.Free))
	assert.EqualValues(t, 500, c.DailyLimit(plan.Premium))
	assert.EqualValues(t, 2000, c.DailyLimit(plan.Pro))

	// Unknown plans fail closed to the free tier limit.
	assert.EqualValues(t, 10, c.DailyLimit(plan.Plan("enterprise")))
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("overrides merge with defaults", func(t *testing.T) {
		t.Parallel()

		path := writeCatalog(t, `
plans:
  premium:
    daily_quota: 750
    price_id: pri_premium_monthly
  pro:
    price_id: pri_pro_monthly
`)

		c, err := plan.LoadCatalog(path)
		require.NoError(t, err)

		assert.EqualValues(t, 750, c.DailyLimit(plan.Premium))
		assert.Equal(t, "pri_premium_monthly", c.PriceID(plan.Premium))
		// Quota untouched when the file only sets a price.
		assert.EqualValues(t, 2000, c.DailyLimit(plan.Pro))
		assert.Equal(t, "pri_pro_monthly", c.PriceID(plan.Pro))
		assert.EqualValues(t, 10, c.DailyLimit(plan.Free))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := plan.LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, plan.ErrCatalogNotFound)
	})

	t.Run("unknown plan name", func(t *testing.T) {
		t.Parallel()

		path := writeCatalog(t, "plans:\n  enterprise:\n    daily_quota: 100\n")
		_, err := plan.LoadCatalog(path)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})

	t.Run("negative quota", func(t *testing.T) {
		t.Parallel()

		path := writeCatalog(t, "plans:\n  premium:\n    daily_quota: -1\n")
		_, err := plan.LoadCatalog(path)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeCatalog(t, "plans: [not a map")
		_, err := plan.LoadCatalog(path)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})
}

func TestPlanForPrice(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, `
plans:
  premium:
    price_id: pri_premium
  pro:
    price_id: pri_pro
`)
	c, err := plan.LoadCatalog(path)
	require.NoError(t, err)

	p, err := c.PlanForPrice("pri_pro")
	require.NoError(t, err)
	assert.Equal(t, plan.Pro, p)

	_, err = c.PlanForPrice("pri_missing")
	assert.ErrorIs(t, err, plan.ErrUnknownPlan)

	_, err = c.PlanForPrice("")
	assert.ErrorIs(t, err, plan.ErrUnknownPlan)
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
