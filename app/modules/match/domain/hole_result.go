package matchdomain

// HoleOutcome is the match-play verdict for a single hole.
type HoleOutcome string

const (
	OutcomeWin    HoleOutcome = "WIN"
	OutcomeHalved HoleOutcome = "HALVED"
)

// HoleResult is the outcome of one hole between two teams. Under match play Outcome and
// Winner are set; under stroke play only Difference (team one minus team two) is meaningful.
type HoleResult struct {
	Outcome    HoleOutcome `json:"status,omitempty"`
	Winner     TeamID      `json:"winner,omitempty"`
	Difference int         `json:"difference"`
}

// ResolveHole compares the first two teams on a hole. It yields no result (ok == false) when
// the hole is not complete or the roster is not exactly two teams.
func ResolveHole(h Hole, teams []Team, format PlayFormat) (HoleResult, bool) {
	if !h.IsComplete || len(teams) != 2 {
		return HoleResult{}, false
	}
	one, okOne := h.Strokes(teams[0].ID)
	two, okTwo := h.Strokes(teams[1].ID)
	if !okOne || !okTwo || one == nil || two == nil {
		return HoleResult{}, false
	}

	diff := *one - *two
	switch format {
	case PlayMatch:
		switch {
		case diff < 0:
			return HoleResult{Outcome: OutcomeWin, Winner: teams[0].ID, Difference: diff}, true
		case diff > 0:
			return HoleResult{Outcome: OutcomeWin, Winner: teams[1].ID, Difference: diff}, true
		default:
			return HoleResult{Outcome: OutcomeHalved, Difference: diff}, true
		}
	case PlayStroke:
		return HoleResult{Difference: diff}, true
	}
	return HoleResult{}, false
}
