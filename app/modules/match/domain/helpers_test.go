package matchdomain

import (
	"fmt"
	"testing"
	"time"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

var testNow = time.Date(2025, time.June, 7, 8, 30, 0, 0, time.UTC)

func newTestMatch(t *testing.T, format PlayFormat, names ...string) Match {
	t.Helper()
	teams := make([]TeamSetup, len(names))
	for i, n := range names {
		teams[i] = TeamSetup{Name: n}
	}
	m, err := NewMatch(MatchSetup{
		Title: "Saturday",
		Teams: teams,
		Formats: []FormatSetup{
			{Type: GameFront, BetAmount: 5, Enabled: true},
			{Type: GameBack, BetAmount: 10, Enabled: true},
			{Type: GameTotal, BetAmount: 20, Enabled: true},
		},
		PlayFormat:    format,
		EnablePresses: true,
	}, &seqIDs{}, testNow)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	return m
}

// enter writes strokes for one team on consecutive holes starting at firstHole.
func enter(t *testing.T, m *Match, team int, firstHole int, strokes ...int) {
	t.Helper()
	for i, s := range strokes {
		v := s
		if _, err := ApplyScore(m, firstHole+i, m.Teams[team].ID, &v); err != nil {
			t.Fatalf("ApplyScore hole %d: %v", firstHole+i, err)
		}
	}
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func intPtr(v int) *int { return &v }
