package billing

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
)

// handleSweep runs the quota threshold sweep for a day. Internal-only:
// callers present the shared sweep secret as a bearer token. The day
// defaults to today and can be overridden with ?day=YYYY-MM-DD for
// catch-up runs.
func (m *Module) handleSweep(w http.ResponseWriter, r *http.Request) {
	if !m.sweepAuthorized(r) {
		respondError(w, http.StatusUnauthorized, "invalid sweep credentials")
		return
	}

	day := quota.Today()
	if raw := r.URL.Query().Get("day"); raw != "" {
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			respondError(w, http.StatusBadRequest, "day must be YYYY-MM-DD")
			return
		}
		day = quota.Day(raw)
	}

	summary, err := m.sweeper.Run(r.Context(), day)
	if err != nil {
		m.log.ErrorContext(r.Context(), "quota sweep failed",
			slog.String("day", string(day)),
			slog.Any("error", err),
		)
		respondError(w, http.StatusInternalServerError, "sweep failed")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

func (m *Module) sweepAuthorized(r *http.Request) bool {
	if m.cfg.SweepSecret == "" {
		return false
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(m.cfg.SweepSecret)) == 1
}
