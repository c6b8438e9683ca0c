package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	matchevents "github.com/Black-And-White-Club/match-tracker/app/modules/match/events"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamConfigs lists the JetStream streams the service publishes into.
func StreamConfigs() []jetstream.StreamConfig {
	return []jetstream.StreamConfig{
		{
			Name:     matchevents.Stream,
			Subjects: []string{matchevents.Stream + ".>"},
		},
	}
}

// StreamNames returns the names of the streams in StreamConfigs.
func StreamNames() []string {
	cfgs := StreamConfigs()
	names := make([]string, len(cfgs))
	for i, cfg := range cfgs {
		names[i] = cfg.Name
	}
	return names
}

// InitializeStreams creates or updates the streams in StreamConfigs.
func InitializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	for _, cfg := range StreamConfigs() {
		if _, err := js.CreateOrUpdateStream(ctx, cfg); err != nil {
			logger.Error("Failed to create JetStream stream",
				slog.String("stream", cfg.Name),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
		}
		logger.Info("JetStream stream ready", slog.String("stream", cfg.Name))
	}
	return nil
}
