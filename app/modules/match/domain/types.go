package matchdomain

import "time"

// HoleCount is the number of holes pre-allocated for every match.
const HoleCount = 18

const (
	MinTeams = 2
	MaxTeams = 3
)

type (
	MatchID string
	TeamID  string
	PressID string
)

// GameType identifies one of the three sub-games a match can be played for.
type GameType string

const (
	GameFront GameType = "front"
	GameBack  GameType = "back"
	GameTotal GameType = "total"
)

// GameTypes lists the game types in display order.
var GameTypes = []GameType{GameFront, GameBack, GameTotal}

func (g GameType) Valid() bool {
	switch g {
	case GameFront, GameBack, GameTotal:
		return true
	}
	return false
}

// Span returns the first and last hole numbers covered by the game type.
func (g GameType) Span() (first, last int) {
	switch g {
	case GameFront:
		return 1, 9
	case GameBack:
		return 10, 18
	case GameTotal:
		return 1, HoleCount
	}
	return 0, 0
}

// Label is the display name used in scorecards and format statuses.
func (g GameType) Label() string {
	switch g {
	case GameFront:
		return "Front 9"
	case GameBack:
		return "Back 9"
	case GameTotal:
		return "Full 18"
	}
	return string(g)
}

// PlayFormat is the scoring rule applied to the whole match.
type PlayFormat string

const (
	PlayStroke PlayFormat = "stroke"
	PlayMatch  PlayFormat = "match"
)

func (p PlayFormat) Valid() bool {
	return p == PlayStroke || p == PlayMatch
}

type Team struct {
	ID   TeamID `json:"id"`
	Name string `json:"name"`
}

// GameFormat is an enabled sub-game and its stake, snapshotted at match creation.
type GameFormat struct {
	Type      GameType `json:"type"`
	BetAmount float64  `json:"bet_amount"`
}

// TeamScore is one team's entry on a hole. A nil Strokes means not yet entered.
type TeamScore struct {
	TeamID  TeamID `json:"team_id"`
	Strokes *int   `json:"strokes"`
}

type Hole struct {
	Number     int         `json:"number"`
	Scores     []TeamScore `json:"scores"`
	IsComplete bool        `json:"is_complete"`
	Presses    []Press     `json:"presses"`
}

// Press is a side wager between two teams that only counts holes from HoleStarted onward.
type Press struct {
	ID          PressID  `json:"id"`
	From        TeamID   `json:"from"`
	To          TeamID   `json:"to"`
	Type        GameType `json:"type"`
	Amount      float64  `json:"amount"`
	Active      bool     `json:"active"`
	HoleStarted int      `json:"hole_started"`
}

type Match struct {
	ID            MatchID      `json:"id"`
	Title         string       `json:"title"`
	Teams         []Team       `json:"teams"`
	GameFormats   []GameFormat `json:"game_formats"`
	PlayFormat    PlayFormat   `json:"play_format"`
	EnablePresses bool         `json:"enable_presses"`
	Holes         []Hole       `json:"holes"`
	IsComplete    bool         `json:"is_complete"`
	CreatedAt     time.Time    `json:"created_at"`
	TeeTime       *time.Time   `json:"tee_time,omitempty"`
}

// Team looks up a team by id.
func (m Match) Team(id TeamID) (Team, bool) {
	for _, t := range m.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Hole returns a pointer into m.Holes so the controller can mutate it in place.
func (m *Match) Hole(number int) (*Hole, bool) {
	for i := range m.Holes {
		if m.Holes[i].Number == number {
			return &m.Holes[i], true
		}
	}
	return nil, false
}

// Format returns the enabled game format of the given type.
func (m Match) Format(t GameType) (GameFormat, bool) {
	for _, f := range m.GameFormats {
		if f.Type == t {
			return f, true
		}
	}
	return GameFormat{}, false
}

// CompletedHoles counts holes with every score entered.
func (m Match) CompletedHoles() int {
	n := 0
	for _, h := range m.Holes {
		if h.IsComplete {
			n++
		}
	}
	return n
}

// HasScores reports whether any stroke has been entered yet.
func (m Match) HasScores() bool {
	for _, h := range m.Holes {
		for _, s := range h.Scores {
			if s.Strokes != nil {
				return true
			}
		}
	}
	return false
}

// AllPresses returns every press in hole order.
func (m Match) AllPresses() []Press {
	var out []Press
	for _, h := range m.Holes {
		out = append(out, h.Presses...)
	}
	return out
}

// Strokes returns the team's entry on the hole; ok is false when the team has no slot.
func (h Hole) Strokes(teamID TeamID) (strokes *int, ok bool) {
	for _, s := range h.Scores {
		if s.TeamID == teamID {
			return s.Strokes, true
		}
	}
	return nil, false
}

// strokesOrZero treats an unplayed entry as zero, as stroke totals do.
func (h Hole) strokesOrZero(teamID TeamID) int {
	if s, ok := h.Strokes(teamID); ok && s != nil {
		return *s
	}
	return 0
}
