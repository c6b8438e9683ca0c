package testutils

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nats-io/nats.go/jetstream"
)

// PurgeStreams removes every message from the named streams. Missing streams are skipped.
func (env *TestEnvironment) PurgeStreams(ctx context.Context, streamNames ...string) error {
	if env.JetStream == nil {
		return errors.New("JetStream not initialized")
	}
	for _, name := range streamNames {
		stream, err := env.JetStream.Stream(ctx, name)
		if err != nil {
			if errors.Is(err, jetstream.ErrStreamNotFound) {
				continue
			}
			return fmt.Errorf("failed to access stream %s: %w", name, err)
		}
		if err := stream.Purge(ctx); err != nil {
			log.Printf("Warning: failed to purge stream %s: %v", name, err)
		}
	}
	return nil
}

// StreamMessageCount reports how many messages the named stream currently holds.
func (env *TestEnvironment) StreamMessageCount(ctx context.Context, streamName string) (uint64, error) {
	stream, err := env.JetStream.Stream(ctx, streamName)
	if err != nil {
		return 0, fmt.Errorf("failed to access stream %s: %w", streamName, err)
	}
	info, err := stream.Info(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read stream %s info: %w", streamName, err)
	}
	return info.State.Msgs, nil
}
