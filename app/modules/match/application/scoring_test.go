package matchservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchevents "github.com/Black-And-White-Club/match-tracker/app/modules/match/events"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestMatchService_EnterScore(t *testing.T) {
	tests := []struct {
		name        string
		strokes     *int
		hole        int
		prepare     func(t *testing.T, s *MatchService, m matchdomain.Match)
		matchID     matchdomain.MatchID
		wantFailure error
		wantTrace   []string
	}{
		{
			name:      "records strokes",
			strokes:   intPtr(4),
			hole:      1,
			wantTrace: []string{"GetMatchForUpdate", "SaveMatch"},
		},
		{
			name:        "zero strokes rejected before load",
			strokes:     intPtr(0),
			hole:        1,
			wantFailure: ErrInvalidScore,
			wantTrace:   []string{},
		},
		{
			name:        "too many strokes rejected",
			strokes:     intPtr(16),
			hole:        1,
			wantFailure: ErrInvalidScore,
			wantTrace:   []string{},
		},
		{
			name:        "unknown match",
			strokes:     intPtr(4),
			hole:        1,
			matchID:     "missing",
			wantFailure: ErrMatchNotFound,
			wantTrace:   []string{"GetMatchForUpdate"},
		},
		{
			name:        "unknown hole",
			strokes:     intPtr(4),
			hole:        19,
			wantFailure: matchdomain.ErrUnknownHole,
			wantTrace:   []string{"GetMatchForUpdate"},
		},
		{
			name:    "completed match",
			strokes: intPtr(4),
			hole:    1,
			prepare: func(t *testing.T, s *MatchService, m matchdomain.Match) {
				res, err := s.CompleteMatch(context.Background(), m.ID)
				require.NoError(t, err)
				require.True(t, res.IsSuccess())
			},
			wantFailure: ErrMatchCompleted,
			wantTrace:   []string{"GetMatchForUpdate", "SaveMatch", "GetMatchForUpdate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeMatchRepository()
			m := seededMatch(t, repo, matchdomain.PlayStroke)
			s := newTestService(repo, nil)
			if tt.prepare != nil {
				tt.prepare(t, s, m)
			}
			id := m.ID
			if tt.matchID != "" {
				id = tt.matchID
			}

			res, err := s.EnterScore(context.Background(), EnterScoreRequest{
				MatchID:    id,
				HoleNumber: tt.hole,
				TeamID:     m.Teams[0].ID,
				Strokes:    tt.strokes,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTrace, repo.Trace())

			if tt.wantFailure != nil {
				require.True(t, res.IsFailure())
				assert.ErrorIs(t, *res.Failure, tt.wantFailure)
				return
			}
			require.True(t, res.IsSuccess())
			assert.Equal(t, matchdomain.HoleOpen, res.Success.State)
			assert.False(t, res.Success.HoleCompleted)
		})
	}
}

func TestMatchService_EnterScorePublishesHoleCompleted(t *testing.T) {
	repo := NewFakeMatchRepository()
	m := seededMatch(t, repo, matchdomain.PlayMatch)
	pub := NewFakePublisher()
	s := newTestService(repo, pub)
	ctx := context.Background()

	res, err := s.EnterScore(ctx, EnterScoreRequest{MatchID: m.ID, HoleNumber: 3, TeamID: m.Teams[0].ID, Strokes: intPtr(4)})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Empty(t, pub.Published)

	res, err = s.EnterScore(ctx, EnterScoreRequest{MatchID: m.ID, HoleNumber: 3, TeamID: m.Teams[1].ID, Strokes: intPtr(5)})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.True(t, res.Success.HoleCompleted)
	require.NotNil(t, res.Success.PressOffer)

	msgs := pub.Published[matchevents.HoleCompletedV1]
	require.Len(t, msgs, 1)
	assert.Equal(t, matchevents.HoleCompletedV1, msgs[0].Metadata.Get("topic"))
	assert.NotEmpty(t, msgs[0].Metadata.Get("correlation_id"))

	var payload matchevents.HoleCompletedPayloadV1
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
	assert.Equal(t, m.ID, payload.MatchID)
	assert.Equal(t, 3, payload.HoleNumber)
	require.NotNil(t, payload.Offer)
	assert.Len(t, payload.Offer.Pairs, 2)

	scoped := pub.Published[matchevents.HoleCompletedV1+"."+string(m.ID)]
	require.Len(t, scoped, 1)
	assert.Equal(t, msgs[0].Payload, scoped[0].Payload)

	// Editing a completed hole keeps it complete and does not announce it again.
	res, err = s.EnterScore(ctx, EnterScoreRequest{MatchID: m.ID, HoleNumber: 3, TeamID: m.Teams[1].ID, Strokes: intPtr(3)})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.False(t, res.Success.HoleCompleted)
	assert.Len(t, pub.Published[matchevents.HoleCompletedV1], 1)
}

func TestMatchService_EnterScorePublishFailureIsNotFatal(t *testing.T) {
	repo := NewFakeMatchRepository()
	m := seededMatch(t, repo, matchdomain.PlayStroke)
	pub := NewFakePublisher()
	pub.PublishFn = func(string, ...*message.Message) error { return errors.New("nats down") }
	s := newTestService(repo, pub)
	ctx := context.Background()

	for _, team := range m.Teams {
		res, err := s.EnterScore(ctx, EnterScoreRequest{MatchID: m.ID, HoleNumber: 1, TeamID: team.ID, Strokes: intPtr(4)})
		require.NoError(t, err)
		require.True(t, res.IsSuccess())
	}

	got, err := s.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.Success.Holes[0].IsComplete)
}

func TestMatchService_EnterScoreSaveError(t *testing.T) {
	repo := NewFakeMatchRepository()
	m := seededMatch(t, repo, matchdomain.PlayStroke)
	dbErr := errors.New("write timeout")
	repo.SaveMatchFunc = func(context.Context, bun.IDB, matchdomain.Match) error { return dbErr }
	pub := NewFakePublisher()
	s := newTestService(repo, pub)

	res, err := s.EnterScore(context.Background(), EnterScoreRequest{MatchID: m.ID, HoleNumber: 1, TeamID: m.Teams[0].ID, Strokes: intPtr(4)})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, res.IsSuccess())
	assert.Empty(t, pub.Published)
}

func TestMatchService_CreatePresses(t *testing.T) {
	repo := NewFakeMatchRepository()
	m := seededMatch(t, repo, matchdomain.PlayMatch)
	s := newTestService(repo, nil)
	ctx := context.Background()
	a, b := m.Teams[0].ID, m.Teams[1].ID

	decl := []matchdomain.PressDeclaration{{From: b, To: a, Type: matchdomain.GameTotal}}

	res, err := s.CreatePresses(ctx, CreatePressesRequest{MatchID: m.ID, HoleNumber: 1, Presses: decl})
	require.NoError(t, err)
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, *res.Failure, matchdomain.ErrHoleNotComplete)

	for _, team := range []matchdomain.TeamID{a, b} {
		_, err := s.EnterScore(ctx, EnterScoreRequest{MatchID: m.ID, HoleNumber: 1, TeamID: team, Strokes: intPtr(4)})
		require.NoError(t, err)
	}

	res, err = s.CreatePresses(ctx, CreatePressesRequest{MatchID: m.ID, HoleNumber: 1, Presses: decl})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	require.Len(t, *res.Success, 1)
	p := (*res.Success)[0]
	assert.Equal(t, 10.0, p.Amount)
	assert.Equal(t, 1, p.HoleStarted)
	assert.True(t, p.Active)

	status, err := s.GetMatchStatus(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, status.IsSuccess())
	assert.Len(t, status.Success.Presses, 1)
	assert.Equal(t, "All Square through 1", status.Success.Status)

	res, err = s.CreatePresses(ctx, CreatePressesRequest{
		MatchID:    m.ID,
		HoleNumber: 1,
		Presses:    []matchdomain.PressDeclaration{{From: a, To: a, Type: matchdomain.GameTotal}},
	})
	require.NoError(t, err)
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, *res.Failure, matchdomain.ErrSelfPress)
}

func TestMatchService_PressesDisabled(t *testing.T) {
	repo := NewFakeMatchRepository()
	setup := twoTeamSetup(matchdomain.PlayMatch).MatchSetup
	setup.EnablePresses = false
	m, err := matchdomain.NewMatch(setup, &seqIDs{n: 100}, testNow)
	require.NoError(t, err)
	repo.Seed(t, m)
	pub := NewFakePublisher()
	s := newTestService(repo, pub)
	ctx := context.Background()
	a, b := m.Teams[0].ID, m.Teams[1].ID

	var last ScoreResult
	for _, team := range []matchdomain.TeamID{a, b} {
		last, err = s.EnterScore(ctx, EnterScoreRequest{MatchID: m.ID, HoleNumber: 1, TeamID: team, Strokes: intPtr(4)})
		require.NoError(t, err)
		require.True(t, last.IsSuccess())
	}
	assert.True(t, last.Success.HoleCompleted)
	assert.Nil(t, last.Success.PressOffer)

	msgs := pub.Published[matchevents.HoleCompletedV1]
	require.Len(t, msgs, 1, "completion is announced without an offer")
	var payload matchevents.HoleCompletedPayloadV1
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
	assert.Nil(t, payload.Offer)

	res, err := s.CreatePresses(ctx, CreatePressesRequest{
		MatchID:    m.ID,
		HoleNumber: 1,
		Presses:    []matchdomain.PressDeclaration{{From: b, To: a, Type: matchdomain.GameTotal}},
	})
	require.NoError(t, err)
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, *res.Failure, matchdomain.ErrPressesDisabled)

	stored, err := s.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Success.Holes[0].Presses)
}

func TestMatchService_GetMatchStatus(t *testing.T) {
	repo := NewFakeMatchRepository()
	m := seededMatch(t, repo, matchdomain.PlayStroke)
	s := newTestService(repo, nil)
	ctx := context.Background()

	for i, strokes := range []int{4, 5} {
		_, err := s.EnterScore(ctx, EnterScoreRequest{MatchID: m.ID, HoleNumber: 1, TeamID: m.Teams[i].ID, Strokes: intPtr(strokes)})
		require.NoError(t, err)
	}

	res, err := s.GetMatchStatus(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "A leads by 1", res.Success.Status)
	assert.Equal(t, m.Teams[0].ID, res.Success.Winner)
	assert.Equal(t, 1, res.Success.CompletedHoles)
	assert.NotNil(t, res.Success.StrokePlay)
	assert.Nil(t, res.Success.MatchPlay)

	again, err := s.GetMatchStatus(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, *res.Success, *again.Success)
}
