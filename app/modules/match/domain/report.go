package matchdomain

// MatchReport is the full on-demand evaluation of a match.
type MatchReport struct {
	MatchID        MatchID           `json:"match_id"`
	PlayFormat     PlayFormat        `json:"play_format"`
	Status         string            `json:"status"`
	Winner         TeamID            `json:"winner,omitempty"`
	CompletedHoles int               `json:"completed_holes"`
	MatchPlay      *MatchPlayResult  `json:"match_play,omitempty"`
	StrokePlay     *StrokePlayResult `json:"stroke_play,omitempty"`
	Presses        []PressResult     `json:"presses"`
	Formats        []FormatResult    `json:"formats"`
	Balances       []Balance         `json:"balances"`
}

// Evaluate runs the evaluator for the match's play format and settles all wagers. It reads
// the match only, so repeated calls on the same ledger return identical reports.
func Evaluate(m Match) MatchReport {
	r := MatchReport{
		MatchID:        m.ID,
		PlayFormat:     m.PlayFormat,
		CompletedHoles: m.CompletedHoles(),
	}

	switch m.PlayFormat {
	case PlayMatch:
		mp := EvaluateMatchPlay(m)
		r.MatchPlay = &mp
		r.Status, r.Winner = mp.Status, mp.Winner
	case PlayStroke:
		sp := EvaluateStrokePlay(m)
		r.StrokePlay = &sp
		r.Status, r.Winner = sp.Status, sp.Winner
	default:
		r.Status = InvalidStatus
	}

	r.Presses = SettlePresses(m)
	r.Formats = SettleFormats(m)
	r.Balances = ComputeBalances(m, r.Presses, r.Formats)
	return r
}
