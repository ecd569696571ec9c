package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	billingmod "github.com/Muhammed2101812/Designer-tools-sub003/modules/billing"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/config"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/email"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/httpserver"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/logger"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/notification"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/pg"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/ratelimit"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/redis"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/requestid"
	"github.com/Muhammed2101812/Designer-tools-sub003/svc/subscription"
)

type appConfig struct {
	Environment    string `env:"APP_ENV" envDefault:"development"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"billing-engine"`
	PlanConfigPath string `env:"PLAN_CONFIG_PATH"`

	CheckoutRateLimit  int           `env:"CHECKOUT_RATE_LIMIT" envDefault:"30"`
	CheckoutRateWindow time.Duration `env:"CHECKOUT_RATE_WINDOW" envDefault:"1m"`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(ctx, appCfg, log); err != nil {
		log.ErrorContext(ctx, "server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var (
		pgCfg     pg.Config
		redisCfg  redis.Config
		httpCfg   httpserver.Config
		moduleCfg billingmod.Config
		paddleCfg subscription.PaddleConfig
		emailCfg  email.Config
	)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&moduleCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	catalog := plan.DefaultCatalog()
	if appCfg.PlanConfigPath != "" {
		catalog, err = plan.LoadCatalog(appCfg.PlanConfigPath)
		if err != nil {
			return err
		}
	}

	store := subscription.NewPostgresStore(pool)
	ledger := quota.NewLedger(quota.NewPostgresStore(pool), catalog,
		quota.WithLogger(log.With(logger.Component("quota"))))

	// Without Postmark credentials emails go to the log. Keeps local and
	// staging runs from needing a mail account.
	var sender email.Sender
	if err := config.Load(&emailCfg); err == nil && emailCfg.PostmarkServerToken != "" {
		sender, err = email.NewPostmarkSender(emailCfg)
		if err != nil {
			return err
		}
	} else {
		sender = email.NewDevSender(log)
	}

	recipient := func(ctx context.Context, userID string) (notification.Recipient, error) {
		profile, err := store.GetProfile(ctx, userID)
		if errors.Is(err, subscription.ErrProfileNotFound) {
			return notification.Recipient{}, nil
		}
		if err != nil {
			return notification.Recipient{}, err
		}
		return notification.Recipient{Email: profile.Email, OptOut: profile.NotifyOptOut}, nil
	}

	scheduler := notification.NewScheduler(
		notification.NewPostgresSuppressionStore(pool),
		sender,
		recipient,
		notification.WithLogger(log.With(logger.Component("notification"))),
	)

	subOpts := []subscription.Option{
		subscription.WithNotifier(scheduler),
		subscription.WithLogger(log.With(logger.Component("subscription"))),
	}
	if err := config.Load(&paddleCfg); err == nil && paddleCfg.APIKey != "" {
		provider, err := subscription.NewPaddleProvider(paddleCfg)
		if err != nil {
			return err
		}
		subOpts = append(subOpts, subscription.WithProvider(provider))
	}
	subs := subscription.NewService(store, catalog, subOpts...)

	sweeper := notification.NewSweeper(scheduler, ledger, subs.PlanFor, catalog,
		log.With(logger.Component("sweep")))

	limiter, err := ratelimit.New(
		ratelimit.NewRedisStore(redisClient, "ratelimit"),
		ratelimit.Config{Limit: appCfg.CheckoutRateLimit, Window: appCfg.CheckoutRateWindow},
	)
	if err != nil {
		return err
	}

	module := billingmod.New(moduleCfg, subs, ledger, scheduler, sweeper,
		billingmod.WithRateLimiter(limiter),
		billingmod.WithLogger(log.With(logger.Component("http"))),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Mount("/", module.Router())

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("http server listening", slog.String("addr", httpCfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("http server stopped")
		}),
	)

	return srv.Run(ctx, r)
}
