package matchdomain

import "errors"

// Domain errors. Conditions the engine treats as normal (an incomplete hole, a match-play
// request on a three-team match) are reported through results, never through these.
var (
	ErrUnknownHole         = errors.New("hole does not exist")
	ErrUnknownTeam         = errors.New("team is not part of the match")
	ErrHoleNotComplete     = errors.New("hole is not complete")
	ErrClearCompletedHole  = errors.New("cannot clear a score on a completed hole")
	ErrFormatNotEnabled    = errors.New("game format is not enabled for this match")
	ErrSelfPress           = errors.New("a team cannot press itself")
	ErrInvalidTeamCount    = errors.New("a match needs 2 or 3 teams")
	ErrDuplicateTeamName   = errors.New("each team must have a unique name")
	ErrNoGameFormats       = errors.New("at least one game format must be enabled")
	ErrDuplicateGameFormat = errors.New("game format listed more than once")
	ErrInvalidGameType     = errors.New("unknown game format type")
	ErrInvalidPlayFormat   = errors.New("unknown play format")
	ErrNegativeBet         = errors.New("bet amount cannot be negative")
	ErrMatchStarted        = errors.New("match has already started")
	ErrPressesDisabled     = errors.New("presses are not enabled for this match")
)
