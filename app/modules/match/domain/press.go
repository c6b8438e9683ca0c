package matchdomain

import "fmt"

// PressDeclaration is a caller's request to start a press on a just-completed hole.
type PressDeclaration struct {
	From TeamID   `json:"from"`
	To   TeamID   `json:"to"`
	Type GameType `json:"type"`
}

// PressResult is a press together with its running settlement.
type PressResult struct {
	Press
	Status string `json:"status"`
	Winner TeamID `json:"winner,omitempty"`
	// FromScore and ToScore are hole wins under match play and stroke totals under stroke play.
	FromScore   int `json:"from_score"`
	ToScore     int `json:"to_score"`
	HolesScored int `json:"holes_scored"`
}

// CreatePresses anchors the declared presses at a completed hole. The amount of each press is
// copied from its format's current bet. Declarations are validated as a batch; on any error
// nothing is added. Identical declarations are separate wagers and are all kept. Whether a match
// accepts presses at all is left to the caller.
func CreatePresses(m *Match, holeNumber int, decls []PressDeclaration, ids IDGenerator) ([]Press, error) {
	h, ok := m.Hole(holeNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHole, holeNumber)
	}
	if !h.IsComplete {
		return nil, fmt.Errorf("%w: %d", ErrHoleNotComplete, holeNumber)
	}

	created := make([]Press, 0, len(decls))
	for _, d := range decls {
		if _, ok := m.Team(d.From); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, d.From)
		}
		if _, ok := m.Team(d.To); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, d.To)
		}
		if d.From == d.To {
			return nil, fmt.Errorf("%w: %s", ErrSelfPress, d.From)
		}
		format, ok := m.Format(d.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFormatNotEnabled, d.Type)
		}
		created = append(created, Press{
			ID:          PressID(ids.NewID()),
			From:        d.From,
			To:          d.To,
			Type:        d.Type,
			Amount:      format.BetAmount,
			Active:      true,
			HoleStarted: holeNumber,
		})
	}

	h.Presses = append(h.Presses, created...)
	return created, nil
}

// SettlePress computes a press's status from the live ledger, looking only at completed holes
// numbered at or after the hole the press started on.
func SettlePress(m Match, p Press) PressResult {
	res := PressResult{Press: p}
	from, okFrom := m.Team(p.From)
	to, okTo := m.Team(p.To)
	if !okFrom || !okTo {
		res.Status = InvalidStatus
		return res
	}
	pair := []Team{from, to}

	for _, h := range m.Holes {
		if h.Number < p.HoleStarted || !h.IsComplete {
			continue
		}
		res.HolesScored++
		switch m.PlayFormat {
		case PlayMatch:
			hr, ok := ResolveHole(h, pair, PlayMatch)
			if !ok || hr.Outcome == OutcomeHalved {
				continue
			}
			if hr.Winner == from.ID {
				res.FromScore++
			} else {
				res.ToScore++
			}
		case PlayStroke:
			res.FromScore += h.strokesOrZero(from.ID)
			res.ToScore += h.strokesOrZero(to.ID)
		}
	}

	switch m.PlayFormat {
	case PlayMatch:
		switch {
		case res.FromScore > res.ToScore:
			res.Status = fmt.Sprintf("%s wins %d to %d", from.Name, res.FromScore, res.ToScore)
			res.Winner = from.ID
		case res.ToScore > res.FromScore:
			res.Status = fmt.Sprintf("%s wins %d to %d", to.Name, res.ToScore, res.FromScore)
			res.Winner = to.ID
		default:
			res.Status = "Press is tied"
		}
	case PlayStroke:
		switch {
		case res.FromScore < res.ToScore:
			res.Status = fmt.Sprintf("%s wins by %d", from.Name, res.ToScore-res.FromScore)
			res.Winner = from.ID
		case res.ToScore < res.FromScore:
			res.Status = fmt.Sprintf("%s wins by %d", to.Name, res.FromScore-res.ToScore)
			res.Winner = to.ID
		default:
			res.Status = "Press is tied"
		}
	default:
		res.Status = InvalidStatus
	}
	return res
}

// SettlePresses settles every press on the match in hole order.
func SettlePresses(m Match) []PressResult {
	presses := m.AllPresses()
	out := make([]PressResult, 0, len(presses))
	for _, p := range presses {
		out = append(out, SettlePress(m, p))
	}
	return out
}
