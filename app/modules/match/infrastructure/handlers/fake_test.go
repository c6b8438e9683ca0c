package matchhandlers

import (
	"context"

	matchservice "github.com/Black-And-White-Club/match-tracker/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ------------------------
// Fake Match Service
// ------------------------

// FakeService is a programmable matchservice.Service that records the calls it receives.
type FakeService struct {
	trace []string

	CreateMatchFunc      func(ctx context.Context, req matchservice.CreateMatchRequest) (matchservice.MatchResult, error)
	GetMatchFunc         func(ctx context.Context, id matchdomain.MatchID) (matchservice.MatchResult, error)
	ListMatchesFunc      func(ctx context.Context, filter matchdb.ListFilter) (matchservice.MatchListResult, error)
	EnterScoreFunc       func(ctx context.Context, req matchservice.EnterScoreRequest) (matchservice.ScoreResult, error)
	CreatePressesFunc    func(ctx context.Context, req matchservice.CreatePressesRequest) (matchservice.PressesResult, error)
	GetMatchStatusFunc   func(ctx context.Context, id matchdomain.MatchID) (matchservice.ReportResult, error)
	CompleteMatchFunc    func(ctx context.Context, id matchdomain.MatchID) (matchservice.MatchResult, error)
	RenameTeamFunc       func(ctx context.Context, id matchdomain.MatchID, teamID matchdomain.TeamID, name string) (matchservice.MatchResult, error)
	DeleteMatchFunc      func(ctx context.Context, id matchdomain.MatchID) (matchservice.DeleteResult, error)
	ClearMatchesFunc     func(ctx context.Context) (matchservice.ClearResult, error)
	ExportScorecardFunc  func(ctx context.Context, id matchdomain.MatchID) (matchservice.FileResult, error)
	RenderScoreChartFunc func(ctx context.Context, id matchdomain.MatchID) (matchservice.FileResult, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) CreateMatch(ctx context.Context, req matchservice.CreateMatchRequest) (matchservice.MatchResult, error) {
	f.record("CreateMatch")
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, req)
	}
	return matchservice.MatchResult{}, nil
}

func (f *FakeService) GetMatch(ctx context.Context, id matchdomain.MatchID) (matchservice.MatchResult, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, id)
	}
	return matchservice.MatchResult{}, nil
}

func (f *FakeService) ListMatches(ctx context.Context, filter matchdb.ListFilter) (matchservice.MatchListResult, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, filter)
	}
	return matchservice.MatchListResult{}, nil
}

func (f *FakeService) EnterScore(ctx context.Context, req matchservice.EnterScoreRequest) (matchservice.ScoreResult, error) {
	f.record("EnterScore")
	if f.EnterScoreFunc != nil {
		return f.EnterScoreFunc(ctx, req)
	}
	return matchservice.ScoreResult{}, nil
}

func (f *FakeService) CreatePresses(ctx context.Context, req matchservice.CreatePressesRequest) (matchservice.PressesResult, error) {
	f.record("CreatePresses")
	if f.CreatePressesFunc != nil {
		return f.CreatePressesFunc(ctx, req)
	}
	return matchservice.PressesResult{}, nil
}

func (f *FakeService) GetMatchStatus(ctx context.Context, id matchdomain.MatchID) (matchservice.ReportResult, error) {
	f.record("GetMatchStatus")
	if f.GetMatchStatusFunc != nil {
		return f.GetMatchStatusFunc(ctx, id)
	}
	return matchservice.ReportResult{}, nil
}

func (f *FakeService) CompleteMatch(ctx context.Context, id matchdomain.MatchID) (matchservice.MatchResult, error) {
	f.record("CompleteMatch")
	if f.CompleteMatchFunc != nil {
		return f.CompleteMatchFunc(ctx, id)
	}
	return matchservice.MatchResult{}, nil
}

func (f *FakeService) RenameTeam(ctx context.Context, id matchdomain.MatchID, teamID matchdomain.TeamID, name string) (matchservice.MatchResult, error) {
	f.record("RenameTeam")
	if f.RenameTeamFunc != nil {
		return f.RenameTeamFunc(ctx, id, teamID, name)
	}
	return matchservice.MatchResult{}, nil
}

func (f *FakeService) DeleteMatch(ctx context.Context, id matchdomain.MatchID) (matchservice.DeleteResult, error) {
	f.record("DeleteMatch")
	if f.DeleteMatchFunc != nil {
		return f.DeleteMatchFunc(ctx, id)
	}
	return matchservice.DeleteResult{}, nil
}

func (f *FakeService) ClearMatches(ctx context.Context) (matchservice.ClearResult, error) {
	f.record("ClearMatches")
	if f.ClearMatchesFunc != nil {
		return f.ClearMatchesFunc(ctx)
	}
	return matchservice.ClearResult{}, nil
}

func (f *FakeService) ExportScorecard(ctx context.Context, id matchdomain.MatchID) (matchservice.FileResult, error) {
	f.record("ExportScorecard")
	if f.ExportScorecardFunc != nil {
		return f.ExportScorecardFunc(ctx, id)
	}
	return matchservice.FileResult{}, nil
}

func (f *FakeService) RenderScoreChart(ctx context.Context, id matchdomain.MatchID) (matchservice.FileResult, error) {
	f.record("RenderScoreChart")
	if f.RenderScoreChartFunc != nil {
		return f.RenderScoreChartFunc(ctx, id)
	}
	return matchservice.FileResult{}, nil
}

var _ matchservice.Service = (*FakeService)(nil)

// ------------------------
// Fake Tracer
// ------------------------

type fakeSpanKey struct{}

// FakeTracer records the span names it starts and tags the returned context with the name.
type FakeTracer struct {
	noop.Tracer
	trace []string
}

func (f *FakeTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	f.trace = append(f.trace, name)
	ctx, span := f.Tracer.Start(ctx, name, opts...)
	return context.WithValue(ctx, fakeSpanKey{}, name), span
}

func (f *FakeTracer) Trace() []string { return f.trace }
