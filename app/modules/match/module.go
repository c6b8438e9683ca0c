package match

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/match-tracker/app/observability"
	matchservice "github.com/Black-And-White-Club/match-tracker/app/modules/match/application"
	matchhandlers "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/handlers"
	matchdb "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/repositories"
	matchrouter "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/router"
	"github.com/Black-And-White-Club/match-tracker/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// Module represents the match module.
type Module struct {
	MatchService matchservice.Service
	MatchRouter  *matchrouter.MatchRouter
	logger       *slog.Logger
	cancelFunc   context.CancelFunc
}

// NewMatchModule wires the match store, service, bus handlers and HTTP routes. A nil db selects
// the in-memory store; a nil bus router leaves the module HTTP-only.
func NewMatchModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	publisher message.Publisher,
	subscriber message.Subscriber,
	router *message.Router,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing match module", slog.String("store", cfg.Match.Store))

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var repo matchdb.Repository
	switch {
	case cfg.Match.Store == config.StoreMemory:
		repo = matchdb.NewMemoryRepository()
		db = nil
	case db != nil:
		repo = matchdb.NewRepository(db)
	default:
		return nil, fmt.Errorf("match store %q needs a database", cfg.Match.Store)
	}

	service := matchservice.NewMatchService(repo, publisher, logger, obs.Metrics, tracer, db, location)
	handlers := matchhandlers.NewMatchHandlers(service, logger, tracer)

	var mr *matchrouter.MatchRouter
	if router != nil && subscriber != nil && publisher != nil {
		mr = matchrouter.NewMatchRouter(logger, router, subscriber, publisher, tracer, obs.Registry)
		if err := mr.Configure(ctx, handlers, obs.Metrics); err != nil {
			return nil, fmt.Errorf("failed to configure match router: %w", err)
		}
	}

	if httpRouter != nil {
		limiter := matchhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.Burst)
		matchhandlers.RegisterRoutes(httpRouter, handlers, cfg.HTTP.AllowedOrigins, limiter)
	}

	return &Module{
		MatchService: service,
		MatchRouter:  mr,
		logger:       logger,
	}, nil
}

func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting match module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.Info("Match module goroutine stopped")
}

func (m *Module) Close() error {
	m.logger.Info("Stopping match module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.logger.Info("Match module stopped")
	return nil
}
