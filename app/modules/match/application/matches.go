package matchservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/match-tracker/pkg/results"
	"github.com/uptrace/bun"
)

// CreateMatch builds a new match from the setup form and stores it.
func (s *MatchService) CreateMatch(ctx context.Context, req CreateMatchRequest) (MatchResult, error) {
	return withTelemetry(s, ctx, "CreateMatch", "", func(ctx context.Context) (MatchResult, error) {
		now := s.clock.Now().In(s.location)

		setup := req.MatchSetup
		if req.TeeTimeText != "" {
			tee, err := parseTeeTime(req.TeeTimeText, now, s.location)
			if err != nil {
				return results.FailureResult[matchdomain.Match](err), nil
			}
			setup.TeeTime = &tee
		}

		m, err := matchdomain.NewMatch(setup, s.ids, now)
		if err != nil {
			return results.FailureResult[matchdomain.Match](err), nil
		}

		if err := s.saveMatch(ctx, nil, m); err != nil {
			return MatchResult{}, fmt.Errorf("failed to save new match: %w", err)
		}

		s.logger.InfoContext(ctx, "Match created",
			slog.String("match_id", string(m.ID)),
			slog.String("play_format", string(m.PlayFormat)),
			slog.Int("teams", len(m.Teams)),
		)
		return results.SuccessResult[matchdomain.Match, error](m), nil
	})
}

func (s *MatchService) GetMatch(ctx context.Context, id matchdomain.MatchID) (MatchResult, error) {
	return withTelemetry(s, ctx, "GetMatch", id, func(ctx context.Context) (MatchResult, error) {
		m, failure, err := s.loadMatch(ctx, nil, id, false)
		if err != nil {
			return MatchResult{}, err
		}
		if failure != nil {
			return results.FailureResult[matchdomain.Match](failure), nil
		}
		return results.SuccessResult[matchdomain.Match, error](m), nil
	})
}

// ListMatches returns stored matches newest first.
func (s *MatchService) ListMatches(ctx context.Context, filter matchdb.ListFilter) (MatchListResult, error) {
	return withTelemetry(s, ctx, "ListMatches", "", func(ctx context.Context) (MatchListResult, error) {
		if !filter.Valid() {
			return results.FailureResult[[]matchdomain.Match](fmt.Errorf("%w: %q", ErrInvalidFilter, filter)), nil
		}
		matches, err := s.repo.ListMatches(ctx, nil, filter)
		if err != nil {
			return MatchListResult{}, err
		}
		return results.SuccessResult[[]matchdomain.Match, error](matches), nil
	})
}

// CompleteMatch marks a match finished. Completing an already complete match succeeds
// without writing.
func (s *MatchService) CompleteMatch(ctx context.Context, id matchdomain.MatchID) (MatchResult, error) {
	return withTelemetry(s, ctx, "CompleteMatch", id, func(ctx context.Context) (MatchResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (MatchResult, error) {
			m, failure, err := s.loadMatch(ctx, db, id, true)
			if err != nil {
				return MatchResult{}, err
			}
			if failure != nil {
				return results.FailureResult[matchdomain.Match](failure), nil
			}
			if m.IsComplete {
				return results.SuccessResult[matchdomain.Match, error](m), nil
			}

			m.IsComplete = true
			if err := s.saveMatch(ctx, db, m); err != nil {
				return MatchResult{}, fmt.Errorf("failed to save completed match: %w", err)
			}
			s.metrics.RecordMatchCompleted(ctx)
			return results.SuccessResult[matchdomain.Match, error](m), nil
		})
	})
}

// RenameTeam changes a team's name before play starts.
func (s *MatchService) RenameTeam(ctx context.Context, id matchdomain.MatchID, teamID matchdomain.TeamID, name string) (MatchResult, error) {
	return withTelemetry(s, ctx, "RenameTeam", id, func(ctx context.Context) (MatchResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (MatchResult, error) {
			m, failure, err := s.loadMatch(ctx, db, id, true)
			if err != nil {
				return MatchResult{}, err
			}
			if failure != nil {
				return results.FailureResult[matchdomain.Match](failure), nil
			}
			if m.IsComplete {
				return results.FailureResult[matchdomain.Match](ErrMatchCompleted), nil
			}
			if err := m.RenameTeam(teamID, name); err != nil {
				return results.FailureResult[matchdomain.Match](err), nil
			}
			if err := s.saveMatch(ctx, db, m); err != nil {
				return MatchResult{}, fmt.Errorf("failed to save renamed team: %w", err)
			}
			return results.SuccessResult[matchdomain.Match, error](m), nil
		})
	})
}

func (s *MatchService) DeleteMatch(ctx context.Context, id matchdomain.MatchID) (DeleteResult, error) {
	return withTelemetry(s, ctx, "DeleteMatch", id, func(ctx context.Context) (DeleteResult, error) {
		if id == "" {
			return results.FailureResult[matchdomain.MatchID](ErrInvalidMatchID), nil
		}
		err := s.repo.DeleteMatch(ctx, nil, id)
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[matchdomain.MatchID](fmt.Errorf("%w: %s", ErrMatchNotFound, id)), nil
		}
		if err != nil {
			return DeleteResult{}, err
		}
		return results.SuccessResult[matchdomain.MatchID, error](id), nil
	})
}

// ClearMatches removes every stored match and reports how many were removed.
func (s *MatchService) ClearMatches(ctx context.Context) (ClearResult, error) {
	return withTelemetry(s, ctx, "ClearMatches", "", func(ctx context.Context) (ClearResult, error) {
		n, err := s.repo.ClearMatches(ctx, nil)
		if err != nil {
			return ClearResult{}, err
		}
		s.logger.InfoContext(ctx, "Matches cleared", slog.Int("count", n))
		return results.SuccessResult[int, error](n), nil
	})
}
