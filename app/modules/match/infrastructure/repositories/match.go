package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	"github.com/uptrace/bun"
)

// Impl stores matches in Postgres.
type Impl struct {
	DB  *bun.DB
	now func() time.Time
}

// NewRepository creates a Postgres-backed match repository.
func NewRepository(db *bun.DB) Repository {
	return &Impl{DB: db, now: time.Now}
}

func (r *Impl) conn(db bun.IDB) bun.IDB {
	if db == nil {
		return r.DB
	}
	return db
}

func (r *Impl) GetMatch(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error) {
	return r.get(ctx, db, id, false)
}

func (r *Impl) GetMatchForUpdate(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error) {
	return r.get(ctx, db, id, true)
}

func (r *Impl) get(ctx context.Context, db bun.IDB, id matchdomain.MatchID, lock bool) (matchdomain.Match, error) {
	row := new(Match)
	q := r.conn(db).NewSelect().Model(row).Where("m.id = ?", id)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matchdomain.Match{}, ErrNotFound
		}
		return matchdomain.Match{}, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return row.Data, nil
}

func (r *Impl) SaveMatch(ctx context.Context, db bun.IDB, m matchdomain.Match) error {
	_, err := r.conn(db).NewInsert().
		Model(toDBModel(m, r.now().UTC())).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("play_format = EXCLUDED.play_format").
		Set("is_complete = EXCLUDED.is_complete").
		Set("updated_at = EXCLUDED.updated_at").
		Set("data = EXCLUDED.data").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save match %s: %w", m.ID, err)
	}
	return nil
}

func (r *Impl) DeleteMatch(ctx context.Context, db bun.IDB, id matchdomain.MatchID) error {
	res, err := r.conn(db).NewDelete().
		Model((*Match)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) ClearMatches(ctx context.Context, db bun.IDB) (int, error) {
	res, err := r.conn(db).NewDelete().
		Model((*Match)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear matches: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared matches: %w", err)
	}
	return int(n), nil
}

func (r *Impl) ListMatches(ctx context.Context, db bun.IDB, filter ListFilter) ([]matchdomain.Match, error) {
	var rows []Match
	q := r.conn(db).NewSelect().Model(&rows).Order("m.created_at DESC", "m.id DESC")
	switch filter {
	case FilterActive:
		q = q.Where("m.is_complete = ?", false)
	case FilterCompleted:
		q = q.Where("m.is_complete = ?", true)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	out := make([]matchdomain.Match, len(rows))
	for i, row := range rows {
		out[i] = row.Data
	}
	return out, nil
}
