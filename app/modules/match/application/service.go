package matchservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/match-tracker/app/observability"
	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/match-tracker/pkg/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// MatchService implements the Service interface.
type MatchService struct {
	repo      matchdb.Repository
	publisher message.Publisher
	logger    *slog.Logger
	metrics   observability.MatchMetrics
	tracer    trace.Tracer
	db        *bun.DB
	clock     Clock
	ids       matchdomain.IDGenerator
	location  *time.Location
}

// NewMatchService creates a new MatchService. A nil db runs repository calls without a
// transaction, which is how the in-memory store is used. Tee times and default titles are
// read in location.
func NewMatchService(
	repo matchdb.Repository,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.MatchMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	location *time.Location,
) *MatchService {
	if location == nil {
		location = time.UTC
	}
	return &MatchService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		clock:     realClock{},
		ids:       UUIDGenerator{},
		location:  location,
	}
}

var _ Service = (*MatchService)(nil)

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *MatchService,
	ctx context.Context,
	operationName string,
	matchID matchdomain.MatchID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("match_id", string(matchID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		slog.String("operation", operationName),
		slog.String("match_id", string(matchID)),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("match_id", string(matchID)),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("match_id", string(matchID)),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("match_id", string(matchID)),
			slog.Any("failure_payload", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			slog.String("operation", operationName),
			slog.String("match_id", string(matchID)),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *MatchService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// loadMatch reads a match. A missing record or empty id comes back as failure, which callers
// return as their result; err is reserved for infrastructure faults.
func (s *MatchService) loadMatch(ctx context.Context, db bun.IDB, id matchdomain.MatchID, forUpdate bool) (m matchdomain.Match, failure error, err error) {
	if id == "" {
		return matchdomain.Match{}, ErrInvalidMatchID, nil
	}

	start := time.Now()
	if forUpdate {
		m, err = s.repo.GetMatchForUpdate(ctx, db, id)
	} else {
		m, err = s.repo.GetMatch(ctx, db, id)
	}
	s.metrics.RecordDBQueryDuration(ctx, time.Since(start))

	if errors.Is(err, matchdb.ErrNotFound) {
		return matchdomain.Match{}, fmt.Errorf("%w: %s", ErrMatchNotFound, id), nil
	}
	if err != nil {
		return matchdomain.Match{}, nil, err
	}
	return m, nil, nil
}

func (s *MatchService) saveMatch(ctx context.Context, db bun.IDB, m matchdomain.Match) error {
	start := time.Now()
	err := s.repo.SaveMatch(ctx, db, m)
	s.metrics.RecordDBQueryDuration(ctx, time.Since(start))
	return err
}
