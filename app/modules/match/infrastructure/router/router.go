package matchrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	matchhandlers "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/handlers"
	matchevents "github.com/Black-And-White-Club/match-tracker/app/modules/match/events"
	"github.com/Black-And-White-Club/match-tracker/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// MatchRouter subscribes the match handlers to their bus topics.
type MatchRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
	unpublished    *unpublishedResults
}

func NewMatchRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *MatchRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && os.Getenv(TestEnvironmentFlag) != TestEnvironmentValue {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &MatchRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
		unpublished:    newUnpublishedResults(unpublishedResultsTTL),
	}
}

// Configure adds the router middleware and registers every match handler.
func (r *MatchRouter) Configure(ctx context.Context, handlers matchhandlers.Handlers, handlerMetrics handlerwrapper.ReturningMetrics) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	} else {
		r.logger.Info("Skipping Prometheus router metrics middleware")
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(ctx, handlers, handlerMetrics); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes each request topic to its typed handler.
func (r *MatchRouter) RegisterHandlers(ctx context.Context, handlers matchhandlers.Handlers, handlerMetrics handlerwrapper.ReturningMetrics) error {
	registerHandler(r, ctx, matchevents.ScoreEntryRequestedV1, handlerMetrics, handlers.HandleScoreEntryRequested)
	registerHandler(r, ctx, matchevents.PressRequestedV1, handlerMetrics, handlers.HandlePressRequested)
	return nil
}

// registerHandler wires one typed handler and publishes each result to the topic in its
// metadata. Results still unpublished when a publish fails are kept against the incoming
// message UUID; a retry or redelivery of that message publishes them without running the
// handler a second time.
func registerHandler[T any](
	r *MatchRouter,
	ctx context.Context,
	topic string,
	handlerMetrics handlerwrapper.ReturningMetrics,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := fmt.Sprintf("match.%s", topic)
	wrapped := handlerwrapper.WrapTransformingTyped(handlerName, r.logger, r.tracer, handlerMetrics, handler)

	r.Router.AddHandler(
		handlerName,
		topic,
		r.subscriber,
		"",
		nil,
		func(msg *message.Message) ([]*message.Message, error) {
			messages, replay := r.unpublished.take(msg.UUID)
			if replay {
				r.logger.InfoContext(ctx, "Republishing results of an already handled message",
					slog.String("handler", handlerName),
					slog.String("msg_uuid", msg.UUID),
					slog.Int("results", len(messages)),
				)
			} else {
				var err error
				messages, err = wrapped(msg)
				if err != nil {
					return nil, err
				}
			}
			for i, m := range messages {
				publishTopic := m.Metadata.Get(handlerwrapper.TopicMetadataKey)
				if publishTopic == "" {
					r.logger.ErrorContext(ctx, "Result message has no topic, dropping",
						slog.String("handler", handlerName),
						slog.String("msg_uuid", m.UUID),
					)
					continue
				}
				if err := r.publisher.Publish(publishTopic, m); err != nil {
					r.unpublished.keep(msg.UUID, messages[i:])
					return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
				}
			}
			return nil, nil
		},
	)
}

const unpublishedResultsTTL = 10 * time.Minute

type pendingResults struct {
	messages []*message.Message
	keptAt   time.Time
}

// unpublishedResults holds handler output that has not reached the bus yet, by incoming message UUID.
type unpublishedResults struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]pendingResults
}

func newUnpublishedResults(ttl time.Duration) *unpublishedResults {
	return &unpublishedResults{ttl: ttl, now: time.Now, entries: make(map[string]pendingResults)}
}

func (u *unpublishedResults) keep(uuid string, messages []*message.Message) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries[uuid] = pendingResults{messages: messages, keptAt: u.now()}
}

// take removes and returns the results kept for uuid. Expired entries are dropped on the way.
func (u *unpublishedResults) take(uuid string) ([]*message.Message, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	now := u.now()
	for k, e := range u.entries {
		if now.Sub(e.keptAt) > u.ttl {
			delete(u.entries, k)
		}
	}
	e, ok := u.entries[uuid]
	if ok {
		delete(u.entries, uuid)
	}
	return e.messages, ok
}

func (r *MatchRouter) Close() error {
	return r.Router.Close()
}
