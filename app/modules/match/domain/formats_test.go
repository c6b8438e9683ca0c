package matchdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleFormatsMatchPlay(t *testing.T) {
	m := newTestMatch(t, PlayMatch, "A", "B")
	// Front nine: A wins 1 and 2, B wins 3, rest halved. Back nine: 2 holes in.
	enter(t, &m, 0, 1, append([]int{3, 3, 5}, repeat(4, 6)...)...)
	enter(t, &m, 1, 1, append([]int{4, 4, 4}, repeat(4, 6)...)...)
	enter(t, &m, 0, 10, 5, 5)
	enter(t, &m, 1, 10, 4, 4)

	got := SettleFormats(m)
	require.Len(t, got, 3)

	front, back, total := got[0], got[1], got[2]
	assert.Equal(t, "Front 9: A wins 1 UP", front.Status)
	assert.True(t, front.Complete)
	assert.Equal(t, m.Teams[0].ID, front.Winner)
	assert.Equal(t, 9, front.HolesPlayed)

	assert.Equal(t, "Back 9: B 2 UP through 2", back.Status)
	assert.False(t, back.Complete)
	assert.Empty(t, back.Winner)

	assert.Equal(t, "Full 18: B 1 UP through 11", total.Status)
	assert.Equal(t, 18, total.HolesInSpan)
}

func TestSettleFormatsStrokePlay(t *testing.T) {
	m := newTestMatch(t, PlayStroke, "A", "B", "C")
	enter(t, &m, 0, 1, repeat(4, 9)...)
	enter(t, &m, 1, 1, repeat(5, 9)...)
	enter(t, &m, 2, 1, repeat(4, 9)...)

	got := SettleFormats(m)
	assert.Equal(t, "Front 9: Tied at 36", got[0].Status)
	assert.Empty(t, got[0].Winner)
	assert.Equal(t, "Back 9: Tied at 0", got[1].Status)

	enter(t, &m, 0, 10, 3)
	enter(t, &m, 1, 10, 4)
	enter(t, &m, 2, 10, 4)
	got = SettleFormats(m)
	assert.Equal(t, "Back 9: A leads by 1", got[1].Status)
	assert.Empty(t, got[1].Winner, "a format is only won once its span is complete")
}

func TestComputeBalances(t *testing.T) {
	m := newTestMatch(t, PlayMatch, "A", "B")
	enter(t, &m, 0, 1, repeat(3, 9)...)
	enter(t, &m, 1, 1, repeat(4, 9)...)
	a, b := m.Teams[0].ID, m.Teams[1].ID
	_, err := CreatePresses(&m, 5, []PressDeclaration{{From: b, To: a, Type: GameTotal}}, &seqIDs{n: 50})
	require.NoError(t, err)

	r := Evaluate(m)
	// Front nine (5) plus the press (20) both go to A.
	assert.Equal(t, []Balance{
		{TeamID: a, TeamName: "A", Net: 25},
		{TeamID: b, TeamName: "B", Net: -25},
	}, r.Balances)

	sum := 0.0
	for _, bal := range r.Balances {
		sum += bal.Net
	}
	assert.Zero(t, sum)
}

func TestComputeBalancesThreeTeamFormat(t *testing.T) {
	m := newTestMatch(t, PlayStroke, "A", "B", "C")
	enter(t, &m, 0, 1, repeat(3, 9)...)
	enter(t, &m, 1, 1, repeat(4, 9)...)
	enter(t, &m, 2, 1, repeat(5, 9)...)

	r := Evaluate(m)
	assert.Equal(t, 10.0, r.Balances[0].Net)
	assert.Equal(t, -5.0, r.Balances[1].Net)
	assert.Equal(t, -5.0, r.Balances[2].Net)
}
