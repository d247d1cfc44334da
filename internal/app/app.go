package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/citymaps-backend/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres/activity"
	approvalrepo "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres/approval"
	catalogrepo "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres/catalog"
	purchaserepo "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres/purchase"
	userrepo "github.com/heartmarshall/citymaps-backend/internal/adapter/postgres/user"
	authpkg "github.com/heartmarshall/citymaps-backend/internal/auth"
	"github.com/heartmarshall/citymaps-backend/internal/config"
	"github.com/heartmarshall/citymaps-backend/internal/metrics"
	"github.com/heartmarshall/citymaps-backend/internal/payment"
	"github.com/heartmarshall/citymaps-backend/internal/service/activity"
	"github.com/heartmarshall/citymaps-backend/internal/service/approval"
	"github.com/heartmarshall/citymaps-backend/internal/service/auth"
	"github.com/heartmarshall/citymaps-backend/internal/service/catalog"
	"github.com/heartmarshall/citymaps-backend/internal/service/purchase"
	"github.com/heartmarshall/citymaps-backend/internal/transport/middleware"
	"github.com/heartmarshall/citymaps-backend/internal/transport/rest"
	"github.com/heartmarshall/citymaps-backend/internal/transport/ws"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the services, and serves until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, postgres.MigrateUp, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()
	m := metrics.New()
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	content := catalogrepo.New(pool)
	purchases := purchaserepo.New(pool)
	approvals := approvalrepo.New(pool)
	stats := activityrepo.New(pool)

	payments := payment.NewValidator()
	tokens := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTokenTTL)
	hasher := authpkg.NewHasher(cfg.Auth.PasswordHashCost)

	authSvc := auth.NewService(logger, users, txm, tokens, hasher, payments)
	catalogSvc := catalog.NewService(logger, content, purchases, stats, clock, m, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)
	engine := purchase.NewEngine(logger, users, content, purchases, payments, txm, clock, m)
	hub := ws.NewHub(logger)
	approvalSvc := approval.NewService(logger, approvals, content, txm, clock, catalogSvc, hub)
	aggregator := activity.NewAggregator(logger, stats, clock, cfg.Scheduler.Location)

	dispatcher := ws.NewDispatcher(logger, m)
	ws.NewHandlers(logger, authSvc, catalogSvc, engine, approvalSvc, aggregator, hub).Register(dispatcher)
	wsServer := ws.NewServer(logger, cfg.Transport, dispatcher, hub, m)

	var scheduler *activity.Scheduler
	health := rest.NewHealthHandler(pool, hub, nil, BuildVersion())
	if cfg.Scheduler.Enabled {
		schedule, err := config.ParseDailySchedule(cfg.Scheduler.Schedule)
		if err != nil {
			return err
		}
		scheduler = activity.NewScheduler(logger, aggregator, activity.SchedulerConfig{
			Schedule:   schedule,
			Location:   cfg.Scheduler.Location,
			RunTimeout: cfg.Scheduler.RunTimeout,
		}, clock, m)
		health = rest.NewHealthHandler(pool, hub, scheduler, BuildVersion())
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr: net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler: newRouter(routerDeps{
			cfg:         cfg,
			logger:      logger,
			metrics:     m,
			auth:        authSvc,
			limiter:     limiter,
			health:      health,
			sessionsAPI: wsServer,
		}),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr), slog.String("ws_path", cfg.Transport.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if scheduler != nil {
		if err := scheduler.Start(gctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if scheduler != nil {
			scheduler.Stop()
		}

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		if err := wsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("ws shutdown: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
