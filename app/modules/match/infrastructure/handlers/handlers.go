package matchhandlers

import (
	"context"
	"log/slog"

	matchservice "github.com/Black-And-White-Club/match-tracker/app/modules/match/application"
	matchevents "github.com/Black-And-White-Club/match-tracker/app/modules/match/events"
	"github.com/Black-And-White-Club/match-tracker/pkg/handlerwrapper"
	"go.opentelemetry.io/otel/trace"
)

// Handlers is the event-bus surface of the match module.
type Handlers interface {
	HandleScoreEntryRequested(ctx context.Context, payload *matchevents.ScoreEntryRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePressRequested(ctx context.Context, payload *matchevents.PressRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

// MatchHandlers translates HTTP requests and bus messages into Match Service calls.
type MatchHandlers struct {
	service matchservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewMatchHandlers creates a new MatchHandlers instance.
func NewMatchHandlers(
	service matchservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) *MatchHandlers {
	return &MatchHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

var _ Handlers = (*MatchHandlers)(nil)
