package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
)

// TestDataGenerator builds randomized but reproducible match fixtures.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator seeds the generator. Without a seed the current time is used.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s))}
}

// MatchSetup returns a setup with the given number of distinctly named teams and every game
// type enabled at a random stake.
func (g *TestDataGenerator) MatchSetup(teams int, format matchdomain.PlayFormat) matchdomain.MatchSetup {
	setup := matchdomain.MatchSetup{
		Title:         g.faker.City() + " " + g.faker.Noun(),
		PlayFormat:    format,
		EnablePresses: true,
	}

	seen := make(map[string]bool, teams)
	for len(setup.Teams) < teams {
		name := g.faker.LastName()
		if seen[name] {
			continue
		}
		seen[name] = true
		setup.Teams = append(setup.Teams, matchdomain.TeamSetup{Name: name})
	}

	for _, gt := range matchdomain.GameTypes {
		setup.Formats = append(setup.Formats, matchdomain.FormatSetup{
			Type:      gt,
			BetAmount: float64(g.faker.IntRange(1, 20) * 5),
			Enabled:   true,
		})
	}
	return setup
}

// Strokes returns a plausible per-hole stroke count.
func (g *TestDataGenerator) Strokes() int {
	return g.faker.IntRange(2, 8)
}
