package subscription

import "errors"

var (
	// ErrSubscriptionNotFound indicates no record exists for the key.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrProfileNotFound indicates no profile exists for the user.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrEventAlreadyProcessed indicates the event ID is present in the
	// idempotency ledger. Not a failure: the caller acknowledges so the
	// provider stops retrying.
	ErrEventAlreadyProcessed = errors.New("billing event already processed")

	// ErrUnknownEventPlan indicates an event referencing a plan outside the
	// catalog. Terminal: redelivery cannot fix it.
	ErrUnknownEventPlan = errors.New("billing event references unknown plan")

	// ErrPlanNotPurchasable indicates a checkout attempt for a plan with no
	// provider price configured.
	ErrPlanNotPurchasable = errors.New("plan has no checkout price configured")

	// ErrNoPortalSubscription indicates a portal request for a user without
	// a provider-managed subscription.
	ErrNoPortalSubscription = errors.New("no provider subscription to manage")

	// ErrNoCheckoutURL indicates the provider returned no checkout URL.
	ErrNoCheckoutURL = errors.New("no checkout URL returned from provider")

	// ErrNoPortalURL indicates the provider returned no portal URL.
	ErrNoPortalURL = errors.New("no portal URL returned from provider")

	// ErrMissingAPIKey indicates a provider configured without credentials.
	ErrMissingAPIKey = errors.New("billing provider API key is required")

	// ErrInvalidProviderEnvironment indicates an unrecognized provider environment.
	ErrInvalidProviderEnvironment = errors.New("invalid billing provider environment")
)
