package matchservice

import (
	"context"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/match-tracker/pkg/results"
)

type (
	MatchResult     = results.OperationResult[matchdomain.Match, error]
	MatchListResult = results.OperationResult[[]matchdomain.Match, error]
	ScoreResult     = results.OperationResult[matchdomain.ScoreUpdate, error]
	PressesResult   = results.OperationResult[[]matchdomain.Press, error]
	ReportResult    = results.OperationResult[matchdomain.MatchReport, error]
	DeleteResult    = results.OperationResult[matchdomain.MatchID, error]
	ClearResult     = results.OperationResult[int, error]
	FileResult      = results.OperationResult[[]byte, error]
)

// Service is the Match Service: every operation loads the match, applies one change through
// the engine and writes the whole record back.
type Service interface {
	CreateMatch(ctx context.Context, req CreateMatchRequest) (MatchResult, error)
	GetMatch(ctx context.Context, id matchdomain.MatchID) (MatchResult, error)
	ListMatches(ctx context.Context, filter matchdb.ListFilter) (MatchListResult, error)
	EnterScore(ctx context.Context, req EnterScoreRequest) (ScoreResult, error)
	CreatePresses(ctx context.Context, req CreatePressesRequest) (PressesResult, error)
	GetMatchStatus(ctx context.Context, id matchdomain.MatchID) (ReportResult, error)
	CompleteMatch(ctx context.Context, id matchdomain.MatchID) (MatchResult, error)
	RenameTeam(ctx context.Context, id matchdomain.MatchID, teamID matchdomain.TeamID, name string) (MatchResult, error)
	DeleteMatch(ctx context.Context, id matchdomain.MatchID) (DeleteResult, error)
	ClearMatches(ctx context.Context) (ClearResult, error)
	ExportScorecard(ctx context.Context, id matchdomain.MatchID) (FileResult, error)
	RenderScoreChart(ctx context.Context, id matchdomain.MatchID) (FileResult, error)
}

// CreateMatchRequest is a new-match form. TeeTimeText is free text such as "tomorrow at 8am"
// and, when set, takes precedence over MatchSetup.TeeTime.
type CreateMatchRequest struct {
	matchdomain.MatchSetup
	TeeTimeText string `json:"tee_time_text,omitempty"`
}

type EnterScoreRequest struct {
	MatchID    matchdomain.MatchID `json:"match_id"`
	HoleNumber int                 `json:"hole_number"`
	TeamID     matchdomain.TeamID  `json:"team_id"`
	Strokes    *int                `json:"strokes"`
}

type CreatePressesRequest struct {
	MatchID    matchdomain.MatchID            `json:"match_id"`
	HoleNumber int                            `json:"hole_number"`
	Presses    []matchdomain.PressDeclaration `json:"presses"`
}
