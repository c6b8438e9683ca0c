package matchdomain

// Balance is a team's net position across settled formats and presses.
type Balance struct {
	TeamID   TeamID  `json:"team_id"`
	TeamName string  `json:"team_name"`
	Net      float64 `json:"net"`
}

// ComputeBalances nets out every decided wager. A press winner collects the press amount from
// its counterpart; a completed format's winner collects the bet from every other team. Presses
// still running count at their current leader, matching how the scorecard shows them.
func ComputeBalances(m Match, presses []PressResult, formats []FormatResult) []Balance {
	net := make(map[TeamID]float64, len(m.Teams))

	for _, p := range presses {
		if p.Winner == "" || !p.Active {
			continue
		}
		loser := p.To
		if p.Winner == p.To {
			loser = p.From
		}
		net[p.Winner] += p.Amount
		net[loser] -= p.Amount
	}

	for _, f := range formats {
		if f.Winner == "" || !f.Complete {
			continue
		}
		for _, t := range m.Teams {
			if t.ID == f.Winner {
				continue
			}
			net[f.Winner] += f.BetAmount
			net[t.ID] -= f.BetAmount
		}
	}

	out := make([]Balance, len(m.Teams))
	for i, t := range m.Teams {
		out[i] = Balance{TeamID: t.ID, TeamName: t.Name, Net: net[t.ID]}
	}
	return out
}
