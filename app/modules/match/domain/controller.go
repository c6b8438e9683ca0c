package matchdomain

import "fmt"

// HoleState is where a hole sits in its one-way lifecycle. The window between a hole turning
// COMPLETE and the caller submitting (or skipping) presses is the awaiting-presses phase; the
// controller signals it through ScoreUpdate.PressOffer and keeps no state of its own.
type HoleState string

const (
	HoleOpen     HoleState = "OPEN"
	HoleComplete HoleState = "COMPLETE"
)

// TeamPair is one direction a press can be offered in.
type TeamPair struct {
	From TeamID `json:"from"`
	To   TeamID `json:"to"`
}

// PressOffer is the "hole just completed, offer presses" signal.
type PressOffer struct {
	HoleNumber int        `json:"hole_number"`
	Pairs      []TeamPair `json:"pairs"`
	Types      []GameType `json:"types"`
}

// ScoreUpdate describes the effect of one score write.
type ScoreUpdate struct {
	HoleNumber    int         `json:"hole_number"`
	TeamID        TeamID      `json:"team_id"`
	Strokes       *int        `json:"strokes"`
	State         HoleState   `json:"state"`
	HoleCompleted bool        `json:"hole_completed"`
	PressOffer    *PressOffer `json:"press_offer,omitempty"`
}

// ApplyScore writes (or clears, with nil) a team's strokes on a hole and recomputes the
// hole's completion. The press offer fires only on the write that fills the last missing
// entry, so it fires at most once per hole. A completed hole never reopens: clearing one of
// its scores is rejected, while changing a value is allowed and does not re-fire the offer.
func ApplyScore(m *Match, holeNumber int, teamID TeamID, strokes *int) (ScoreUpdate, error) {
	h, ok := m.Hole(holeNumber)
	if !ok {
		return ScoreUpdate{}, fmt.Errorf("%w: %d", ErrUnknownHole, holeNumber)
	}
	if _, ok := m.Team(teamID); !ok {
		return ScoreUpdate{}, fmt.Errorf("%w: %s", ErrUnknownTeam, teamID)
	}
	idx := -1
	for i, s := range h.Scores {
		if s.TeamID == teamID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ScoreUpdate{}, fmt.Errorf("%w: %s has no entry on hole %d", ErrUnknownTeam, teamID, holeNumber)
	}

	wasComplete := h.IsComplete
	if wasComplete && strokes == nil {
		return ScoreUpdate{}, fmt.Errorf("%w: hole %d", ErrClearCompletedHole, holeNumber)
	}

	var stored *int
	if strokes != nil {
		v := *strokes
		stored = &v
	}
	h.Scores[idx].Strokes = stored
	h.IsComplete = allEntered(*h)

	upd := ScoreUpdate{
		HoleNumber:    holeNumber,
		TeamID:        teamID,
		Strokes:       stored,
		State:         HoleOpen,
		HoleCompleted: !wasComplete && h.IsComplete,
	}
	if h.IsComplete {
		upd.State = HoleComplete
	}
	if upd.HoleCompleted {
		upd.PressOffer = pressOffer(*m, holeNumber)
	}
	return upd, nil
}

func allEntered(h Hole) bool {
	if len(h.Scores) == 0 {
		return false
	}
	for _, s := range h.Scores {
		if s.Strokes == nil {
			return false
		}
	}
	return true
}

// pressOffer lists both directions of every team pairing and the enabled format types.
func pressOffer(m Match, holeNumber int) *PressOffer {
	offer := &PressOffer{HoleNumber: holeNumber}
	for i := range m.Teams {
		for j := i + 1; j < len(m.Teams); j++ {
			a, b := m.Teams[i].ID, m.Teams[j].ID
			offer.Pairs = append(offer.Pairs, TeamPair{From: a, To: b}, TeamPair{From: b, To: a})
		}
	}
	for _, f := range m.GameFormats {
		offer.Types = append(offer.Types, f.Type)
	}
	return offer
}
