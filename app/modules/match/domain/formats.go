package matchdomain

import "fmt"

// FormatResult is the settlement of one enabled sub-game over its hole span.
type FormatResult struct {
	Type        GameType `json:"type"`
	BetAmount   float64  `json:"bet_amount"`
	HolesInSpan int      `json:"holes_in_span"`
	HolesPlayed int      `json:"holes_played"`
	Complete    bool     `json:"complete"`
	Status      string   `json:"status"`
	Winner      TeamID   `json:"winner,omitempty"`
}

// SettleFormats evaluates every enabled game format. A format only has a winner once every
// hole in its span is complete.
func SettleFormats(m Match) []FormatResult {
	out := make([]FormatResult, 0, len(m.GameFormats))
	for _, f := range m.GameFormats {
		out = append(out, settleFormat(m, f))
	}
	return out
}

func settleFormat(m Match, f GameFormat) FormatResult {
	first, last := f.Type.Span()
	res := FormatResult{Type: f.Type, BetAmount: f.BetAmount, HolesInSpan: last - first + 1}
	label := f.Type.Label()

	var span []Hole
	for _, h := range m.Holes {
		if h.Number >= first && h.Number <= last {
			span = append(span, h)
			if h.IsComplete {
				res.HolesPlayed++
			}
		}
	}
	res.Complete = res.HolesPlayed == res.HolesInSpan

	switch m.PlayFormat {
	case PlayMatch:
		if len(m.Teams) != 2 {
			res.Status = fmt.Sprintf("%s: %s", label, InvalidStatus)
			return res
		}
		wins := map[TeamID]int{}
		for _, h := range span {
			if hr, ok := ResolveHole(h, m.Teams, PlayMatch); ok && hr.Outcome == OutcomeWin {
				wins[hr.Winner]++
			}
		}
		one, two := m.Teams[0], m.Teams[1]
		diff := wins[one.ID] - wins[two.ID]
		leader := one
		if diff < 0 {
			leader = two
		}
		switch {
		case res.Complete && diff == 0:
			res.Status = fmt.Sprintf("%s: Halved", label)
		case res.Complete:
			res.Status = fmt.Sprintf("%s: %s wins %d UP", label, leader.Name, abs(diff))
			res.Winner = leader.ID
		case diff == 0:
			res.Status = fmt.Sprintf("%s: All Square through %d", label, res.HolesPlayed)
		default:
			res.Status = fmt.Sprintf("%s: %s %d UP through %d", label, leader.Name, abs(diff), res.HolesPlayed)
		}
	case PlayStroke:
		if len(m.Teams) < 2 {
			res.Status = fmt.Sprintf("%s: %s", label, InvalidStatus)
			return res
		}
		sub := m
		sub.Holes = span
		standings := EvaluateStrokePlay(sub).Standings
		best, second := standings[0], standings[1]
		margin := second.TotalScore - best.TotalScore
		switch {
		case margin == 0:
			res.Status = fmt.Sprintf("%s: Tied at %d", label, best.TotalScore)
		case res.Complete:
			res.Status = fmt.Sprintf("%s: %s wins by %d", label, best.TeamName, margin)
			res.Winner = best.TeamID
		default:
			res.Status = fmt.Sprintf("%s: %s leads by %d", label, best.TeamName, margin)
		}
	default:
		res.Status = fmt.Sprintf("%s: %s", label, InvalidStatus)
	}
	return res
}
