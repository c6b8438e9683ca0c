package matchdb

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	"github.com/uptrace/bun"
)

// Match is the stored form of a match. The full ledger lives in Data; the scalar columns are
// copies used for listing and filtering without decoding it.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID         matchdomain.MatchID    `bun:"id,pk,type:text"`
	Title      string                 `bun:"title,notnull"`
	PlayFormat matchdomain.PlayFormat `bun:"play_format,notnull"`
	IsComplete bool                   `bun:"is_complete,notnull,default:false"`
	CreatedAt  time.Time              `bun:"created_at,notnull"`
	UpdatedAt  time.Time              `bun:"updated_at,notnull,default:current_timestamp"`
	Data       matchdomain.Match      `bun:"data,type:jsonb,notnull"`
}

func toDBModel(m matchdomain.Match, now time.Time) *Match {
	return &Match{
		ID:         m.ID,
		Title:      m.Title,
		PlayFormat: m.PlayFormat,
		IsComplete: m.IsComplete,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  now,
		Data:       m,
	}
}
