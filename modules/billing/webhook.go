package billing

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	billingevent "github.com/Muhammed2101812/Designer-tools-sub003/pkg/billing"
	"github.com/Muhammed2101812/Designer-tools-sub003/svc/subscription"
)

// maxWebhookBody bounds provider payload size. Real events are a few KB.
const maxWebhookBody = 1 << 20

// handleWebhook ingests one provider event. The body is read raw and
// verified before any parsing; the response code drives the provider's
// redelivery loop.
func (m *Module) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	event, err := billingevent.VerifyAndParse(payload, r.Header.Get(billingevent.SignatureHeader), m.cfg.WebhookSecret, m.cfg.SignatureMaxAge)
	if err != nil {
		if billingevent.IsVerificationError(err) {
			m.log.WarnContext(r.Context(), "rejected billing webhook",
				slog.Any("error", err),
			)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Missing secret is our misconfiguration, not the provider's fault.
		m.log.ErrorContext(r.Context(), "webhook verification unavailable",
			slog.Any("error", err),
		)
		respondError(w, http.StatusInternalServerError, "webhook verification unavailable")
		return
	}

	outcome, err := m.subs.Apply(r.Context(), event)
	if err != nil {
		if errors.Is(err, subscription.ErrUnknownEventPlan) {
			// Terminal: redelivering the same payload cannot fix a plan we
			// do not sell. 4xx stops the retry loop.
			m.log.ErrorContext(r.Context(), "billing event references unknown plan",
				slog.String("event_id", event.ID),
			)
			respondError(w, http.StatusBadRequest, "unknown plan")
			return
		}
		// Transient: the claim rolled back with the transaction, so the
		// provider's redelivery of this event id will be admitted again.
		m.log.ErrorContext(r.Context(), "billing event reconciliation failed",
			slog.String("event_id", event.ID),
			slog.Any("error", err),
		)
		respondError(w, http.StatusInternalServerError, "reconciliation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"eventId": event.ID,
		"outcome": string(outcome),
	})
}
