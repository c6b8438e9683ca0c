package matchdomain

import (
	"cmp"
	"fmt"
	"slices"
)

const strokePlayInvalidDetail = "Stroke play requires at least 2 teams"

// TeamStanding is one row of the stroke-play leaderboard.
type TeamStanding struct {
	TeamID         TeamID  `json:"team_id"`
	TeamName       string  `json:"team_name"`
	TotalScore     int     `json:"total_score"`
	CompletedHoles int     `json:"completed_holes"`
	Average        float64 `json:"average"`
	Position       int     `json:"position"`
}

type StrokePlayResult struct {
	Valid     bool           `json:"valid"`
	Status    string         `json:"status"`
	Details   string         `json:"details,omitempty"`
	Winner    TeamID         `json:"winner,omitempty"`
	Standings []TeamStanding `json:"standings"`
}

// EvaluateStrokePlay totals every team's entered strokes (unplayed holes count as zero) and
// ranks them lowest first. Equal totals share a position; the next higher total takes its
// index-based position, so 68, 70, 70, 72 rank 1, 2, 2, 4.
func EvaluateStrokePlay(m Match) StrokePlayResult {
	if len(m.Teams) < 2 {
		return StrokePlayResult{Status: InvalidStatus, Details: strokePlayInvalidDetail}
	}

	standings := make([]TeamStanding, len(m.Teams))
	for i, t := range m.Teams {
		st := TeamStanding{TeamID: t.ID, TeamName: t.Name}
		for _, h := range m.Holes {
			if s, ok := h.Strokes(t.ID); ok && s != nil {
				st.TotalScore += *s
				st.CompletedHoles++
			}
		}
		if st.CompletedHoles > 0 {
			st.Average = float64(st.TotalScore) / float64(st.CompletedHoles)
		}
		standings[i] = st
	}

	slices.SortStableFunc(standings, func(a, b TeamStanding) int {
		return cmp.Compare(a.TotalScore, b.TotalScore)
	})

	position, current := 1, standings[0].TotalScore
	for i := range standings {
		if standings[i].TotalScore > current {
			position = i + 1
			current = standings[i].TotalScore
		}
		standings[i].Position = position
	}

	res := StrokePlayResult{Valid: true, Standings: standings}
	best, second := standings[0], standings[1]
	if best.TotalScore == second.TotalScore {
		res.Status = fmt.Sprintf("Tied at %d", best.TotalScore)
		return res
	}
	res.Status = fmt.Sprintf("%s leads by %d", best.TeamName, second.TotalScore-best.TotalScore)
	res.Winner = best.TeamID
	return res
}
