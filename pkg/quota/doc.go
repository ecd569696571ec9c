// Package quota implements the per-user, per-day ledger that meters plan
// API usage.
//
// Counters are keyed by (user, calendar day) so they roll over naturally
// at midnight UTC with no reset job. Admission control and the increment
// are one atomic store operation: the store only applies an increment
// while the counter is below the plan limit, which keeps concurrent
// requests from jointly exceeding the limit.
//
//	ledger := quota.NewLedger(store, catalog)
//	decision, err := ledger.CheckAndIncrement(ctx, userID, plan.Free, quota.Today())
//	if err != nil {
//		// store unavailable: fail closed, deny the operation
//	}
//	if !decision.Allowed {
//		// surface an upgrade prompt with decision.Limit
//	}
//
// A counter can legitimately reach exactly the limit; that request is the
// last allowed one. Percentage-used is always computed, never stored.
package quota
