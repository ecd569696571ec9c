package billing

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

// handleConsume admits one metered operation against the user's daily
// quota. Denial is a normal response, not an error: clients get the full
// counter state plus an upgrade hint either way.
func (m *Module) handleConsume(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	p, err := m.subs.PlanFor(r.Context(), userID)
	if err != nil {
		m.log.ErrorContext(r.Context(), "plan resolution failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		respondError(w, http.StatusServiceUnavailable, "quota check unavailable")
		return
	}

	day := quota.Today()
	decision, err := m.ledger.CheckAndIncrement(r.Context(), userID, p, day)
	if err != nil {
		// Fail closed: an unverifiable quota is a denied quota.
		m.log.ErrorContext(r.Context(), "quota store unavailable",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		respondError(w, http.StatusServiceUnavailable, "quota check unavailable")
		return
	}

	if decision.Allowed {
		// Threshold evaluation is advisory; it never delays or fails the
		// consume response.
		used, limit := decision.Used, decision.Limit
		go func(ctx context.Context) {
			if _, err := m.sched.QuotaThreshold(ctx, userID, used, limit, day); err != nil {
				m.log.WarnContext(ctx, "quota threshold check failed",
					slog.String("user_id", userID),
					slog.Any("error", err),
				)
			}
		}(context.WithoutCancel(r.Context()))
	}

	resp := map[string]any{
		"allowed":   decision.Allowed,
		"limit":     decision.Limit,
		"used":      decision.Used,
		"remaining": decision.Remaining,
	}
	if !decision.Allowed {
		resp["upgradeHint"] = "daily quota reached; upgrade your plan for a higher limit"
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleUsage reports the user's counter without consuming quota.
func (m *Module) handleUsage(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	p, err := m.subs.PlanFor(r.Context(), userID)
	if err != nil {
		m.log.ErrorContext(r.Context(), "plan resolution failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		respondError(w, http.StatusServiceUnavailable, "quota lookup unavailable")
		return
	}

	decision, err := m.ledger.Usage(r.Context(), userID, p, quota.Today())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "quota lookup unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"plan":        p,
		"limit":       decision.Limit,
		"used":        decision.Used,
		"remaining":   decision.Remaining,
		"percentUsed": decision.PercentUsed(),
	})
}
