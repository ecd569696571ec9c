package billing

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/notification"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/ratelimit"
	"github.com/Muhammed2101812/Designer-tools-sub003/svc/subscription"
)

// Config holds the module's HTTP-level settings.
type Config struct {
	// WebhookSecret signs provider webhook payloads.
	WebhookSecret string `env:"BILLING_WEBHOOK_SECRET,required"`
	// SignatureMaxAge bounds the webhook replay window. Zero disables it.
	SignatureMaxAge time.Duration `env:"BILLING_SIGNATURE_MAX_AGE" envDefault:"5m"`
	// SweepSecret authorizes the internal quota-sweep trigger.
	SweepSecret string `env:"QUOTA_SWEEP_SECRET,required"`
}

// Module wires subscription, quota, and notification services into HTTP
// handlers. Construct with New and mount Router on the app router.
type Module struct {
	cfg     Config
	subs    *subscription.Service
	ledger  *quota.Ledger
	sched   *notification.Scheduler
	sweeper *notification.Sweeper
	limiter *ratelimit.Limiter
	log     *slog.Logger
}

// ModuleOption configures optional Module dependencies.
type ModuleOption func(*Module)

// WithRateLimiter throttles the authenticated link-creation endpoints.
func WithRateLimiter(l *ratelimit.Limiter) ModuleOption {
	return func(m *Module) { m.limiter = l }
}

// WithLogger sets the module logger.
func WithLogger(log *slog.Logger) ModuleOption {
	return func(m *Module) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates the billing HTTP module. Panics on nil required services.
func New(cfg Config, subs *subscription.Service, ledger *quota.Ledger, sched *notification.Scheduler, sweeper *notification.Sweeper, opts ...ModuleOption) *Module {
	if subs == nil {
		panic("billing module: subscription service is required")
	}
	if ledger == nil {
		panic("billing module: quota ledger is required")
	}
	if sched == nil {
		panic("billing module: notification scheduler is required")
	}
	if sweeper == nil {
		panic("billing module: sweeper is required")
	}

	m := &Module{
		cfg:     cfg,
		subs:    subs,
		ledger:  ledger,
		sched:   sched,
		sweeper: sweeper,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Router builds the module's route tree.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/webhooks/billing", m.handleWebhook)

	r.Route("/billing", func(br chi.Router) {
		br.Use(requireUser)
		if m.limiter != nil {
			br.Use(ratelimit.Middleware(m.limiter, userKeyFunc("billing"), m.log))
		}
		br.Post("/checkout", m.handleCheckout)
		br.Post("/portal", m.handlePortal)
	})

	r.Route("/quota", func(qr chi.Router) {
		qr.Use(requireUser)
		qr.Post("/consume", m.handleConsume)
		qr.Get("/", m.handleUsage)
	})

	r.Post("/internal/quota-sweep", m.handleSweep)

	return r
}

// Handler returns the module as a plain http.Handler.
func (m *Module) Handler() http.Handler {
	return m.Router()
}
