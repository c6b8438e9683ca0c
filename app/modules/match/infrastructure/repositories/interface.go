package matchdb

import (
	"context"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	"github.com/uptrace/bun"
)

// ListFilter narrows ListMatches.
type ListFilter string

const (
	FilterAll       ListFilter = "all"
	FilterActive    ListFilter = "active"
	FilterCompleted ListFilter = "completed"
)

// Valid reports whether f is a known filter. The empty filter means all.
func (f ListFilter) Valid() bool {
	switch f {
	case "", FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Repository persists whole match records keyed by id. Every method takes the bun.IDB to run
// against so callers can pass a transaction; a nil db means the repository's own handle.
//
// Error semantics:
//   - ErrNotFound: no match with that id (GetMatch, GetMatchForUpdate, DeleteMatch)
//   - Other errors: infrastructure failures
type Repository interface {
	GetMatch(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error)
	// GetMatchForUpdate loads a match and, inside a transaction, holds its row until commit.
	GetMatchForUpdate(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error)
	// SaveMatch writes the full record, replacing any previous version.
	SaveMatch(ctx context.Context, db bun.IDB, m matchdomain.Match) error
	DeleteMatch(ctx context.Context, db bun.IDB, id matchdomain.MatchID) error
	ClearMatches(ctx context.Context, db bun.IDB) (int, error)
	// ListMatches returns matches newest first.
	ListMatches(ctx context.Context, db bun.IDB, filter ListFilter) ([]matchdomain.Match, error)
}
