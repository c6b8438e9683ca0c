package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/match-tracker/app/eventbus"
	"github.com/Black-And-White-Club/match-tracker/app/modules/match"
	"github.com/Black-And-White-Club/match-tracker/app/observability"
	"github.com/Black-And-White-Club/match-tracker/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const shutdownTimeout = 10 * time.Second

// App owns the process-wide resources and the match module.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.EventBus
	Router        *message.Router
	HTTPServer    *http.Server
	MatchModule   *match.Module
	wg            sync.WaitGroup
}

// NewApp opens the database and event bus the config asks for and wires the match module.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.Init(config.ToObsConfig(cfg))
	logger := obs.Logger

	app := &App{Config: cfg, Observability: obs}

	if cfg.Match.Store == config.StorePostgres {
		pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
		app.DB = bun.NewDB(pgdb, pgdialect.New())
		if err := app.DB.PingContext(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.InfoContext(ctx, "Connected to Postgres")
	}

	var (
		publisher  message.Publisher
		subscriber message.Subscriber
	)
	if cfg.NATS.URL != "" {
		bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.EventBus = bus
		publisher, subscriber = bus, bus

		router, err := message.NewRouter(message.RouterConfig{CloseTimeout: shutdownTimeout}, watermill.NewSlogLogger(logger))
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create message router: %w", err)
		}
		app.Router = router
	} else {
		logger.WarnContext(ctx, "NATS_URL not set, running without the event bus")
	}

	httpRouter := chi.NewRouter()
	httpRouter.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	httpRouter.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	module, err := match.NewMatchModule(ctx, cfg, obs, app.DB, publisher, subscriber, app.Router, httpRouter)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize match module: %w", err)
	}
	app.MatchModule = module

	app.HTTPServer = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return app, nil
}

// Run serves HTTP, metrics and the bus router until ctx is cancelled, then shuts them down.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 3)

	app.wg.Add(1)
	go app.MatchModule.Run(ctx, &app.wg)

	if app.Router != nil {
		go func() {
			if err := app.Router.Run(ctx); err != nil {
				errs <- fmt.Errorf("message router: %w", err)
			}
		}()
	}

	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		go func() {
			if err := app.Observability.ServeMetrics(ctx, addr); err != nil {
				logger.ErrorContext(ctx, "Metrics server stopped", slog.Any("error", err))
			}
		}()
	}

	go func() {
		logger.InfoContext(ctx, "HTTP server listening", slog.String("address", app.HTTPServer.Addr))
		if err := app.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case runErr = <-errs:
		logger.Error("Component failed, shutting down", slog.Any("error", runErr))
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := app.HTTPServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", slog.Any("error", err))
	}
	app.wg.Wait()
	return runErr
}

// Close releases every resource NewApp opened.
func (app *App) Close() error {
	var errs []error
	if app.MatchModule != nil {
		errs = append(errs, app.MatchModule.Close())
	}
	if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}
	return errors.Join(errs...)
}
