package matchdomain

import (
	"fmt"
	"strings"
	"time"
)

// IDGenerator hands out identifiers for matches, teams and presses.
type IDGenerator interface {
	NewID() string
}

type TeamSetup struct {
	Name string `json:"name"`
}

type FormatSetup struct {
	Type      GameType `json:"type"`
	BetAmount float64  `json:"bet_amount"`
	Enabled   bool     `json:"enabled"`
}

// MatchSetup is everything chosen on the new-match screen.
type MatchSetup struct {
	Title         string        `json:"title"`
	Teams         []TeamSetup   `json:"teams"`
	Formats       []FormatSetup `json:"formats"`
	PlayFormat    PlayFormat    `json:"play_format"`
	EnablePresses bool          `json:"enable_presses"`
	TeeTime       *time.Time    `json:"tee_time,omitempty"`
}

// PlaceholderName is the name shown for a team left unnamed at setup.
func PlaceholderName(position int) string {
	return fmt.Sprintf("Team %d", position)
}

// NewMatch builds a fully-formed match: teams named, enabled formats snapshotted and
// all eighteen holes allocated with an empty score per team.
func NewMatch(setup MatchSetup, ids IDGenerator, now time.Time) (Match, error) {
	if len(setup.Teams) < MinTeams || len(setup.Teams) > MaxTeams {
		return Match{}, fmt.Errorf("%w: got %d", ErrInvalidTeamCount, len(setup.Teams))
	}
	if !setup.PlayFormat.Valid() {
		return Match{}, fmt.Errorf("%w: %q", ErrInvalidPlayFormat, setup.PlayFormat)
	}

	teams := make([]Team, len(setup.Teams))
	seen := make(map[string]bool, len(setup.Teams))
	for i, ts := range setup.Teams {
		name := strings.TrimSpace(ts.Name)
		if name == "" {
			name = PlaceholderName(i + 1)
		}
		if seen[name] {
			return Match{}, fmt.Errorf("%w: %q", ErrDuplicateTeamName, name)
		}
		seen[name] = true
		teams[i] = Team{ID: TeamID(ids.NewID()), Name: name}
	}

	formats, err := enabledFormats(setup.Formats)
	if err != nil {
		return Match{}, err
	}

	title := strings.TrimSpace(setup.Title)
	if title == "" {
		title = fmt.Sprintf("Match %d/%d/%d", int(now.Month()), now.Day(), now.Year())
	}

	holes := make([]Hole, HoleCount)
	for i := range holes {
		scores := make([]TeamScore, len(teams))
		for j, t := range teams {
			scores[j] = TeamScore{TeamID: t.ID}
		}
		holes[i] = Hole{Number: i + 1, Scores: scores, Presses: []Press{}}
	}

	return Match{
		ID:            MatchID(ids.NewID()),
		Title:         title,
		Teams:         teams,
		GameFormats:   formats,
		PlayFormat:    setup.PlayFormat,
		EnablePresses: setup.EnablePresses,
		Holes:         holes,
		CreatedAt:     now,
		TeeTime:       setup.TeeTime,
	}, nil
}

func enabledFormats(setups []FormatSetup) ([]GameFormat, error) {
	var formats []GameFormat
	seen := make(map[GameType]bool, len(setups))
	for _, fs := range setups {
		if !fs.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidGameType, fs.Type)
		}
		if seen[fs.Type] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGameFormat, fs.Type)
		}
		seen[fs.Type] = true
		if !fs.Enabled {
			continue
		}
		if fs.BetAmount < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeBet, fs.Type)
		}
		formats = append(formats, GameFormat{Type: fs.Type, BetAmount: fs.BetAmount})
	}
	if len(formats) == 0 {
		return nil, ErrNoGameFormats
	}
	return formats, nil
}

// RenameTeam changes a team's display name. Names are frozen once scoring begins.
func (m *Match) RenameTeam(id TeamID, name string) error {
	if m.HasScores() {
		return ErrMatchStarted
	}
	idx := -1
	for i, t := range m.Teams {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, id)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = PlaceholderName(idx + 1)
	}
	for i, t := range m.Teams {
		if i != idx && t.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateTeamName, name)
		}
	}
	m.Teams[idx].Name = name
	return nil
}
