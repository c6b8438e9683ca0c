package matchintegrationtests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	matchservice "github.com/Black-And-White-Club/match-tracker/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/match-tracker/app/observability"
	"github.com/Black-And-White-Club/match-tracker/integration_tests/testutils"
)

// recordingPublisher keeps published messages per topic.
type recordingPublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{published: make(map[string][]*message.Message)}
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published[topic] = append(p.published[topic], msgs...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published[topic])
}

// newPostgresService wires a match service to the shared database.
func newPostgresService(env *testutils.TestEnvironment, pub message.Publisher) *matchservice.MatchService {
	return matchservice.NewMatchService(
		matchdb.NewRepository(env.DB),
		pub,
		env.Logger,
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("integration"),
		env.DB,
		time.UTC,
	)
}

func createMatch(t *testing.T, svc *matchservice.MatchService, setup matchdomain.MatchSetup) matchdomain.Match {
	t.Helper()
	res, err := svc.CreateMatch(context.Background(), matchservice.CreateMatchRequest{MatchSetup: setup})
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), "create failed: %v", res.Failure)
	return *res.Success
}
