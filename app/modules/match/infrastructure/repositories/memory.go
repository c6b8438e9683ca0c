package matchdb

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	"github.com/uptrace/bun"
)

// MemoryRepository keeps matches in process memory. Records are stored as JSON so every load
// returns an independent copy, the same round trip the Postgres store performs.
type MemoryRepository struct {
	mu      sync.RWMutex
	matches map[matchdomain.MatchID][]byte
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{matches: make(map[matchdomain.MatchID][]byte)}
}

var _ Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) GetMatch(_ context.Context, _ bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error) {
	r.mu.RLock()
	raw, ok := r.matches[id]
	r.mu.RUnlock()
	if !ok {
		return matchdomain.Match{}, ErrNotFound
	}
	return decode(raw)
}

// GetMatchForUpdate is GetMatch: the in-memory store has no row locks, so concurrent writers
// to one match get last-writer-wins.
func (r *MemoryRepository) GetMatchForUpdate(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error) {
	return r.GetMatch(ctx, db, id)
}

func (r *MemoryRepository) SaveMatch(_ context.Context, _ bun.IDB, m matchdomain.Match) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode match %s: %w", m.ID, err)
	}
	r.mu.Lock()
	r.matches[m.ID] = raw
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) DeleteMatch(_ context.Context, _ bun.IDB, id matchdomain.MatchID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return ErrNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *MemoryRepository) ClearMatches(context.Context, bun.IDB) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.matches)
	clear(r.matches)
	return n, nil
}

func (r *MemoryRepository) ListMatches(_ context.Context, _ bun.IDB, filter ListFilter) ([]matchdomain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchdomain.Match, 0, len(r.matches))
	for _, raw := range r.matches {
		m, err := decode(raw)
		if err != nil {
			return nil, err
		}
		switch {
		case filter == FilterActive && m.IsComplete:
			continue
		case filter == FilterCompleted && !m.IsComplete:
			continue
		}
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b matchdomain.Match) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func decode(raw []byte) (matchdomain.Match, error) {
	var m matchdomain.Match
	if err := json.Unmarshal(raw, &m); err != nil {
		return matchdomain.Match{}, fmt.Errorf("failed to decode stored match: %w", err)
	}
	return m, nil
}
