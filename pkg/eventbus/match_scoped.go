// Package eventbus holds publishing helpers shared by modules that emit match events.
package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishWithMatchScope publishes msg on the match-scoped form of baseTopic, {baseTopic}.{matchID},
// so a client following one match can subscribe without filtering the whole stream:
//   - "match.hole.completed.v1.*" catches every match
//   - "match.hole.completed.v1.abc123" catches one match
func PublishWithMatchScope(pub message.Publisher, baseTopic string, matchID string, msg *message.Message) error {
	if matchID == "" {
		return fmt.Errorf("matchID cannot be empty for match-scoped publish")
	}
	return pub.Publish(FormatMatchScopedTopic(baseTopic, matchID), msg)
}

// FormatMatchScopedTopic formats a topic with a match id suffix without publishing.
func FormatMatchScopedTopic(baseTopic string, matchID string) string {
	return fmt.Sprintf("%s.%s", baseTopic, matchID)
}
