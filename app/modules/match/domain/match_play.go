package matchdomain

import "fmt"

const (
	InvalidStatus          = "Invalid"
	matchPlayInvalidDetail = "Match play requires exactly 2 teams"
)

// MatchPlayResult is the hole-by-hole status of a two-team match.
type MatchPlayResult struct {
	Valid   bool   `json:"valid"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
	Winner  TeamID `json:"winner,omitempty"`

	TeamOneWins    int  `json:"team_one_wins"`
	TeamTwoWins    int  `json:"team_two_wins"`
	HalvedHoles    int  `json:"halved_holes"`
	CompletedHoles int  `json:"completed_holes"`
	HolesRemaining int  `json:"holes_remaining"`
	IsMatchOver    bool `json:"is_match_over"`
	// DecidedAtHole is the hole on which the lead became insurmountable, 0 while undecided.
	DecidedAtHole int `json:"decided_at_hole,omitempty"`
}

// EvaluateMatchPlay tallies every completed hole. The decision is read along the contiguous run
// of completed holes from hole 1, with holes completed past the first gap counted up front since
// they were played before it. Once the lead exceeds the holes left the status, winner and
// DecidedAtHole are frozen; the counters keep tallying later holes.
func EvaluateMatchPlay(m Match) MatchPlayResult {
	if len(m.Teams) != 2 {
		return MatchPlayResult{Status: InvalidStatus, Details: matchPlayInvalidDetail}
	}
	one, two := m.Teams[0], m.Teams[1]
	res := MatchPlayResult{Valid: true}

	outcomes := make(map[int]HoleResult, len(m.Holes))
	for _, h := range m.Holes {
		if hr, ok := ResolveHole(h, m.Teams, PlayMatch); ok {
			outcomes[h.Number] = hr
		}
	}

	prefix := 0
	for prefix < HoleCount {
		if _, ok := outcomes[prefix+1]; !ok {
			break
		}
		prefix++
	}

	var tally matchPlayTally
	for number, hr := range outcomes {
		if number > prefix {
			tally.add(hr, one.ID)
		}
	}
	for number := 1; number <= prefix && res.DecidedAtHole == 0; number++ {
		tally.add(outcomes[number], one.ID)
		if tally.decided() {
			res.DecidedAtHole = number
			res.IsMatchOver = true
			res.Status, res.Winner = tally.decidedStatus(one, two)
		}
	}

	var all matchPlayTally
	for _, hr := range outcomes {
		all.add(hr, one.ID)
	}
	res.TeamOneWins, res.TeamTwoWins, res.HalvedHoles = all.oneWins, all.twoWins, all.halved
	res.CompletedHoles = all.completed()
	res.HolesRemaining = HoleCount - res.CompletedHoles

	if res.IsMatchOver {
		return res
	}
	if all.decided() {
		// Settled only by holes past a gap; the highest of them counts as the deciding hole.
		for number := range outcomes {
			res.DecidedAtHole = max(res.DecidedAtHole, number)
		}
		res.IsMatchOver = true
		res.Status, res.Winner = all.decidedStatus(one, two)
		return res
	}

	diff := all.diff()
	leader := one
	if diff < 0 {
		leader = two
	}
	switch {
	case res.HolesRemaining == 0 && diff == 0:
		res.Status = "Match Halved"
	case res.HolesRemaining == 0:
		res.Status = fmt.Sprintf("%s wins %d UP", leader.Name, abs(diff))
		res.Winner = leader.ID
	case diff == 0:
		res.Status = fmt.Sprintf("All Square through %d", res.CompletedHoles)
	default:
		res.Status = fmt.Sprintf("%s %d UP through %d", leader.Name, abs(diff), res.CompletedHoles)
	}
	return res
}

type matchPlayTally struct {
	oneWins, twoWins, halved int
}

func (t *matchPlayTally) add(hr HoleResult, teamOne TeamID) {
	switch {
	case hr.Outcome == OutcomeHalved:
		t.halved++
	case hr.Winner == teamOne:
		t.oneWins++
	default:
		t.twoWins++
	}
}

func (t matchPlayTally) completed() int { return t.oneWins + t.twoWins + t.halved }

func (t matchPlayTally) diff() int { return t.oneWins - t.twoWins }

func (t matchPlayTally) decided() bool {
	return abs(t.diff()) > HoleCount-t.completed()
}

func (t matchPlayTally) decidedStatus(one, two Team) (string, TeamID) {
	leader := one
	if t.diff() < 0 {
		leader = two
	}
	return fmt.Sprintf("%s wins %d & %d", leader.Name, abs(t.diff()), HoleCount-t.completed()), leader.ID
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
