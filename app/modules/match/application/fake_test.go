package matchservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/match-tracker/app/observability"
	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

// ------------------------
// Fake Match Repository
// ------------------------

// FakeMatchRepository is a programmable matchdb.Repository. Methods without an override fall
// through to an in-memory store so multi-step flows work without setup.
type FakeMatchRepository struct {
	trace []string
	store *matchdb.MemoryRepository

	GetMatchFunc          func(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error)
	GetMatchForUpdateFunc func(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error)
	SaveMatchFunc         func(ctx context.Context, db bun.IDB, m matchdomain.Match) error
	DeleteMatchFunc       func(ctx context.Context, db bun.IDB, id matchdomain.MatchID) error
	ClearMatchesFunc      func(ctx context.Context, db bun.IDB) (int, error)
	ListMatchesFunc       func(ctx context.Context, db bun.IDB, filter matchdb.ListFilter) ([]matchdomain.Match, error)
}

func NewFakeMatchRepository() *FakeMatchRepository {
	return &FakeMatchRepository{trace: []string{}, store: matchdb.NewMemoryRepository()}
}

func (f *FakeMatchRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of repository methods called.
func (f *FakeMatchRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Seed stores m directly, bypassing the trace.
func (f *FakeMatchRepository) Seed(t *testing.T, m matchdomain.Match) {
	t.Helper()
	if err := f.store.SaveMatch(context.Background(), nil, m); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, id)
	}
	return f.store.GetMatch(ctx, db, id)
}

func (f *FakeMatchRepository) GetMatchForUpdate(ctx context.Context, db bun.IDB, id matchdomain.MatchID) (matchdomain.Match, error) {
	f.record("GetMatchForUpdate")
	if f.GetMatchForUpdateFunc != nil {
		return f.GetMatchForUpdateFunc(ctx, db, id)
	}
	return f.store.GetMatchForUpdate(ctx, db, id)
}

func (f *FakeMatchRepository) SaveMatch(ctx context.Context, db bun.IDB, m matchdomain.Match) error {
	f.record("SaveMatch")
	if f.SaveMatchFunc != nil {
		return f.SaveMatchFunc(ctx, db, m)
	}
	return f.store.SaveMatch(ctx, db, m)
}

func (f *FakeMatchRepository) DeleteMatch(ctx context.Context, db bun.IDB, id matchdomain.MatchID) error {
	f.record("DeleteMatch")
	if f.DeleteMatchFunc != nil {
		return f.DeleteMatchFunc(ctx, db, id)
	}
	return f.store.DeleteMatch(ctx, db, id)
}

func (f *FakeMatchRepository) ClearMatches(ctx context.Context, db bun.IDB) (int, error) {
	f.record("ClearMatches")
	if f.ClearMatchesFunc != nil {
		return f.ClearMatchesFunc(ctx, db)
	}
	return f.store.ClearMatches(ctx, db)
}

func (f *FakeMatchRepository) ListMatches(ctx context.Context, db bun.IDB, filter matchdb.ListFilter) ([]matchdomain.Match, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, db, filter)
	}
	return f.store.ListMatches(ctx, db, filter)
}

var _ matchdb.Repository = (*FakeMatchRepository)(nil)

// ------------------------
// Fake Publisher
// ------------------------

// FakePublisher records published messages by topic.
type FakePublisher struct {
	mu        sync.Mutex
	Published map[string][]*message.Message
	PublishFn func(topic string, msgs ...*message.Message) error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{Published: map[string][]*message.Message{}}
}

func (p *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	if p.PublishFn != nil {
		if err := p.PublishFn(topic, msgs...); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published[topic] = append(p.Published[topic], msgs...)
	return nil
}

func (p *FakePublisher) Close() error { return nil }

// ------------------------
// Helpers
// ------------------------

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

var testNow = time.Date(2025, time.June, 7, 8, 30, 0, 0, time.UTC)

func newTestService(repo matchdb.Repository, pub message.Publisher) *MatchService {
	s := NewMatchService(
		repo,
		pub,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
		time.UTC,
	)
	s.clock = fixedClock{t: testNow}
	s.ids = &seqIDs{}
	return s
}

// twoTeamSetup is a two-team match with every format enabled and presses on.
func twoTeamSetup(format matchdomain.PlayFormat) CreateMatchRequest {
	return CreateMatchRequest{MatchSetup: matchdomain.MatchSetup{
		Title: "Saturday",
		Teams: []matchdomain.TeamSetup{{Name: "A"}, {Name: "B"}},
		Formats: []matchdomain.FormatSetup{
			{Type: matchdomain.GameFront, BetAmount: 5, Enabled: true},
			{Type: matchdomain.GameBack, BetAmount: 5, Enabled: true},
			{Type: matchdomain.GameTotal, BetAmount: 10, Enabled: true},
		},
		PlayFormat:    format,
		EnablePresses: true,
	}}
}

// seededMatch builds a match through the domain and stores it in repo.
func seededMatch(t *testing.T, repo *FakeMatchRepository, format matchdomain.PlayFormat) matchdomain.Match {
	t.Helper()
	m, err := matchdomain.NewMatch(twoTeamSetup(format).MatchSetup, &seqIDs{n: 100}, testNow)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	repo.Seed(t, m)
	return m
}

func intPtr(v int) *int { return &v }
