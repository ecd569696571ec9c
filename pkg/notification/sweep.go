package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

// Sweeper walks every user with quota activity for a day and runs their
// threshold checks. It backstops the inline check on the consume path:
// a user whose crossing email was missed (process restart, transient
// store failure) still gets it on the next sweep.
type Sweeper struct {
	scheduler *Scheduler
	ledger    *quota.Ledger
	planFor   PlanFunc
	catalog   *plan.Catalog
	log       *slog.Logger
}

// NewSweeper creates a quota sweep runner. Panics on nil dependencies.
func NewSweeper(scheduler *Scheduler, ledger *quota.Ledger, planFor PlanFunc, catalog *plan.Catalog, log *slog.Logger) *Sweeper {
	if scheduler == nil {
		panic("notification: Scheduler is required")
	}
	if ledger == nil {
		panic("notification: quota ledger is required")
	}
	if planFor == nil {
		panic("notification: plan resolver is required")
	}
	if catalog == nil {
		panic("notification: plan catalog is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		scheduler: scheduler,
		ledger:    ledger,
		planFor:   planFor,
		catalog:   catalog,
		log:       log,
	}
}

// Run evaluates quota thresholds for every active user on the given day.
// Per-user failures are collected into the summary rather than aborting
// the sweep.
func (s *Sweeper) Run(ctx context.Context, day quota.Day) (*Summary, error) {
	active, err := s.ledger.ListActive(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}

	summary := &Summary{Errors: []string{}}
	for _, usage := range active {
		summary.UsersChecked++

		p, err := s.planFor(ctx, usage.UserID)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: resolve plan: %v", usage.UserID, err))
			continue
		}

		limit := s.catalog.DailyLimit(p)
		sent, err := s.scheduler.QuotaThreshold(ctx, usage.UserID, usage.Count, limit, day)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: threshold check: %v", usage.UserID, err))
			continue
		}
		if sent {
			summary.WarningsSent++
		}
	}

	s.log.InfoContext(ctx, "quota sweep finished",
		slog.String("day", string(day)),
		slog.Int("users_checked", summary.UsersChecked),
		slog.Int("warnings_sent", summary.WarningsSent),
		slog.Int("errors", len(summary.Errors)),
	)
	return summary, nil
}
