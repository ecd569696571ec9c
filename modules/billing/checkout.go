package billing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/binder"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
	"github.com/Muhammed2101812/Designer-tools-sub003/svc/subscription"
)

var bindJSON = binder.JSON()

type checkoutRequest struct {
	Plan       string `json:"plan"`
	Email      string `json:"email"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// handleCheckout creates a hosted checkout session for a paid plan.
func (m *Module) handleCheckout(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req checkoutRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := plan.Parse(req.Plan)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown plan: "+req.Plan)
		return
	}

	link, err := m.subs.CreateCheckoutLink(r.Context(), userID, p, subscription.CheckoutOptions{
		Email:      req.Email,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		if errors.Is(err, subscription.ErrPlanNotPurchasable) {
			respondError(w, http.StatusBadRequest, "plan is not purchasable")
			return
		}
		m.log.ErrorContext(r.Context(), "checkout link creation failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		respondError(w, http.StatusBadGateway, "checkout unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"url":       link.URL,
		"sessionId": link.SessionID,
		"expiresAt": link.ExpiresAt,
	})
}

// handlePortal creates a customer portal session for the user's
// provider-managed subscription.
func (m *Module) handlePortal(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	link, err := m.subs.GetCustomerPortalLink(r.Context(), userID)
	if err != nil {
		if errors.Is(err, subscription.ErrNoPortalSubscription) {
			respondError(w, http.StatusNotFound, "no subscription to manage")
			return
		}
		m.log.ErrorContext(r.Context(), "portal link creation failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		respondError(w, http.StatusBadGateway, "portal unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"url":       link.URL,
		"expiresAt": link.ExpiresAt,
	})
}
