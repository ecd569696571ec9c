package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EventType is the normalized billing lifecycle event kind.
type EventType string

const (
	EventCheckoutCompleted   EventType = "checkout.completed"
	EventSubscriptionUpdated EventType = "subscription.updated"
	EventSubscriptionDeleted EventType = "subscription.deleted"
)

// Known reports whether the event type maps to a reconciler transition.
// Unknown types are acknowledged and dropped, never treated as failures.
func (t EventType) Known() bool {
	switch t {
	case EventCheckoutCompleted, EventSubscriptionUpdated, EventSubscriptionDeleted:
		return true
	}
	return false
}

// Event is a verified, decoded billing event.
type Event struct {
	ID         string
	Type       EventType
	OccurredAt time.Time
	// Subscription is populated for all known event types.
	Subscription SubscriptionData
}

// SubscriptionData is the subscription snapshot embedded in an event.
// Period timestamps drive the reconciler's staleness check, so they come
// from the provider, never from local clocks.
type SubscriptionData struct {
	ExternalID         string
	UserID             string
	CustomerID         string
	Plan               string
	Status             string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
}

type wireEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       struct {
		SubscriptionID     string    `json:"subscription_id"`
		UserID             string    `json:"user_id"`
		CustomerID         string    `json:"customer_id"`
		Plan               string    `json:"plan"`
		Status             string    `json:"status"`
		CurrentPeriodStart time.Time `json:"current_period_start"`
		CurrentPeriodEnd   time.Time `json:"current_period_end"`
		CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
	} `json:"data"`
}

// ParseEvent decodes a raw webhook body into an Event.
// The body must already be verified; ParseEvent performs no authentication.
func ParseEvent(raw []byte) (*Event, error) {
	var w wireEvent
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	if w.ID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrMalformedPayload)
	}
	if w.Type == "" {
		return nil, fmt.Errorf("%w: event type is required", ErrMalformedPayload)
	}

	event := &Event{
		ID:         w.ID,
		Type:       EventType(w.Type),
		OccurredAt: w.OccurredAt,
		Subscription: SubscriptionData{
			ExternalID:         w.Data.SubscriptionID,
			UserID:             w.Data.UserID,
			CustomerID:         w.Data.CustomerID,
			Plan:               w.Data.Plan,
			Status:             w.Data.Status,
			CurrentPeriodStart: w.Data.CurrentPeriodStart,
			CurrentPeriodEnd:   w.Data.CurrentPeriodEnd,
			CancelAtPeriodEnd:  w.Data.CancelAtPeriodEnd,
		},
	}

	// Known lifecycle events must reference a subscription and its owner;
	// anything else is malformed rather than merely unknown.
	if event.Type.Known() {
		if event.Subscription.ExternalID == "" {
			return nil, fmt.Errorf("%w: subscription_id is required for %s", ErrMalformedPayload, event.Type)
		}
		if event.Subscription.UserID == "" {
			return nil, fmt.Errorf("%w: user_id is required for %s", ErrMalformedPayload, event.Type)
		}
	}

	return event, nil
}
