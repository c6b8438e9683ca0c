package matchservice

import (
	"context"
	"fmt"
	"log/slog"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchevents "github.com/Black-And-White-Club/match-tracker/app/modules/match/events"
	"github.com/Black-And-White-Club/match-tracker/pkg/eventbus"
	"github.com/Black-And-White-Club/match-tracker/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/match-tracker/pkg/results"
	"github.com/uptrace/bun"
)

// EnterScore writes or clears one team's strokes on a hole. When the write completes the hole,
// the press offer is published on the event bus after the record is saved. Matches without
// presses still announce the completion, with no offer attached.
func (s *MatchService) EnterScore(ctx context.Context, req EnterScoreRequest) (ScoreResult, error) {
	result, err := withTelemetry(s, ctx, "EnterScore", req.MatchID, func(ctx context.Context) (ScoreResult, error) {
		if req.Strokes != nil && (*req.Strokes < MinStrokes || *req.Strokes > MaxStrokes) {
			return results.FailureResult[matchdomain.ScoreUpdate](
				fmt.Errorf("%w: %d is outside %d-%d", ErrInvalidScore, *req.Strokes, MinStrokes, MaxStrokes),
			), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (ScoreResult, error) {
			m, failure, err := s.loadMatch(ctx, db, req.MatchID, true)
			if err != nil {
				return ScoreResult{}, err
			}
			if failure != nil {
				return results.FailureResult[matchdomain.ScoreUpdate](failure), nil
			}
			if m.IsComplete {
				return results.FailureResult[matchdomain.ScoreUpdate](ErrMatchCompleted), nil
			}

			upd, err := matchdomain.ApplyScore(&m, req.HoleNumber, req.TeamID, req.Strokes)
			if err != nil {
				return results.FailureResult[matchdomain.ScoreUpdate](err), nil
			}
			if !m.EnablePresses {
				upd.PressOffer = nil
			}
			if err := s.saveMatch(ctx, db, m); err != nil {
				return ScoreResult{}, fmt.Errorf("failed to save score: %w", err)
			}
			return results.SuccessResult[matchdomain.ScoreUpdate, error](upd), nil
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	s.metrics.RecordScoreEntered(ctx)
	if upd := *result.Success; upd.HoleCompleted {
		s.metrics.RecordHoleCompleted(ctx)
		s.publishHoleCompleted(ctx, req.MatchID, upd)
	}
	return result, nil
}

// publishHoleCompleted announces a newly completed hole. The score is already stored, so a
// publish failure is logged rather than returned.
func (s *MatchService) publishHoleCompleted(ctx context.Context, id matchdomain.MatchID, upd matchdomain.ScoreUpdate) {
	if s.publisher == nil {
		return
	}
	msg, err := handlerwrapper.NewMessage(handlerwrapper.Result{
		Topic: matchevents.HoleCompletedV1,
		Payload: matchevents.HoleCompletedPayloadV1{
			MatchID:    id,
			HoleNumber: upd.HoleNumber,
			Offer:      upd.PressOffer,
		},
	}, "")
	if err == nil {
		msg.SetContext(ctx)
		scoped := msg.Copy()
		err = s.publisher.Publish(matchevents.HoleCompletedV1, msg)
		if err == nil {
			err = eventbus.PublishWithMatchScope(s.publisher, matchevents.HoleCompletedV1, string(id), scoped)
		}
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish hole completed event",
			slog.String("match_id", string(id)),
			slog.Int("hole", upd.HoleNumber),
			slog.Any("error", err),
		)
	}
}

// CreatePresses declares presses on a completed hole.
func (s *MatchService) CreatePresses(ctx context.Context, req CreatePressesRequest) (PressesResult, error) {
	result, err := withTelemetry(s, ctx, "CreatePresses", req.MatchID, func(ctx context.Context) (PressesResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (PressesResult, error) {
			m, failure, err := s.loadMatch(ctx, db, req.MatchID, true)
			if err != nil {
				return PressesResult{}, err
			}
			if failure != nil {
				return results.FailureResult[[]matchdomain.Press](failure), nil
			}
			if m.IsComplete {
				return results.FailureResult[[]matchdomain.Press](ErrMatchCompleted), nil
			}
			if !m.EnablePresses {
				return results.FailureResult[[]matchdomain.Press](matchdomain.ErrPressesDisabled), nil
			}

			created, err := matchdomain.CreatePresses(&m, req.HoleNumber, req.Presses, s.ids)
			if err != nil {
				return results.FailureResult[[]matchdomain.Press](err), nil
			}
			if err := s.saveMatch(ctx, db, m); err != nil {
				return PressesResult{}, fmt.Errorf("failed to save presses: %w", err)
			}
			return results.SuccessResult[[]matchdomain.Press, error](created), nil
		})
	})
	if err == nil && result.IsSuccess() {
		s.metrics.RecordPressesCreated(ctx, len(*result.Success))
	}
	return result, err
}

// GetMatchStatus evaluates the match: the play-format result, every press, every enabled
// format and the resulting balances.
func (s *MatchService) GetMatchStatus(ctx context.Context, id matchdomain.MatchID) (ReportResult, error) {
	return withTelemetry(s, ctx, "GetMatchStatus", id, func(ctx context.Context) (ReportResult, error) {
		m, failure, err := s.loadMatch(ctx, nil, id, false)
		if err != nil {
			return ReportResult{}, err
		}
		if failure != nil {
			return results.FailureResult[matchdomain.MatchReport](failure), nil
		}
		return results.SuccessResult[matchdomain.MatchReport, error](matchdomain.Evaluate(m)), nil
	})
}
