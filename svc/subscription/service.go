package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
)

// BillingProvider abstracts the payment processor's hosted surfaces.
// The provider owns all payment complexity (checkout UI, tax, proration);
// this service only creates links into it.
type BillingProvider interface {
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)
	GetCustomerPortalLink(ctx context.Context, customerID, subscriptionID string) (*PortalLink, error)
}

// CheckoutRequest carries the data needed to open a checkout session.
type CheckoutRequest struct {
	PriceID    string
	UserID     string
	Email      string
	SuccessURL string
	CancelURL  string
}

// Notifier receives lifecycle notifications after a reconciliation
// commits. Implementations are fire-and-forget: they own their own
// suppression and error logging and must never fail the caller.
type Notifier interface {
	SubscriptionConfirmed(ctx context.Context, userID string, p plan.Plan)
	SubscriptionCanceled(ctx context.Context, userID string)
}

// NoopNotifier satisfies Notifier with no side effects.
type NoopNotifier struct{}

func (NoopNotifier) SubscriptionConfirmed(context.Context, string, plan.Plan) {}
func (NoopNotifier) SubscriptionCanceled(context.Context, string)             {}

// Service owns subscription reconciliation and billing provider access.
// Construct once per process and inject; there is no package-level state.
type Service struct {
	store    Store
	catalog  *plan.Catalog
	provider BillingProvider
	notifier Notifier
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithProvider sets the billing provider used for checkout/portal links.
func WithProvider(p BillingProvider) Option {
	return func(s *Service) { s.provider = p }
}

// WithNotifier sets the lifecycle notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates the subscription service. Panics on nil required
// dependencies to fail fast during initialization.
func NewService(store Store, catalog *plan.Catalog, opts ...Option) *Service {
	if store == nil {
		panic("subscription: Store is required")
	}
	if catalog == nil {
		panic("subscription: plan catalog is required")
	}

	s := &Service{
		store:    store,
		catalog:  catalog,
		notifier: NoopNotifier{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlanFor resolves the user's current entitlement. Users without a
// profile are on the free plan; this is the single read every quota
// check goes through.
func (s *Service) PlanFor(ctx context.Context, userID string) (plan.Plan, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return plan.Free, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve plan for %s: %w", userID, err)
	}
	return profile.Plan, nil
}

// GetProfile returns the user's entitlement projection.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.store.GetProfile(ctx, userID)
}

// GetSubscription returns the user's most recent non-canceled subscription.
func (s *Service) GetSubscription(ctx context.Context, userID string) (*Subscription, error) {
	return s.store.GetSubscriptionByUser(ctx, userID)
}

// CreateCheckoutLink opens a hosted checkout session for a paid plan.
func (s *Service) CreateCheckoutLink(ctx context.Context, userID string, p plan.Plan, opts CheckoutOptions) (*CheckoutLink, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no billing provider configured")
	}

	priceID := s.catalog.PriceID(p)
	if priceID == "" {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotPurchasable, p)
	}

	return s.provider.CreateCheckoutLink(ctx, CheckoutRequest{
		PriceID:    priceID,
		UserID:     userID,
		Email:      opts.Email,
		SuccessURL: opts.SuccessURL,
		CancelURL:  opts.CancelURL,
	})
}

// GetCustomerPortalLink returns a portal session for managing the user's
// provider subscription.
func (s *Service) GetCustomerPortalLink(ctx context.Context, userID string) (*PortalLink, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no billing provider configured")
	}

	sub, err := s.store.GetSubscriptionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return nil, ErrNoPortalSubscription
		}
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.CustomerID == "" {
		return nil, ErrNoPortalSubscription
	}

	return s.provider.GetCustomerPortalLink(ctx, profile.CustomerID, sub.ExternalID)
}
