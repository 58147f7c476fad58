package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/events"
)

// changeNotifier drops cached snapshots and announces a mutation to the other nodes.
// Both steps are best effort; the mutation already happened upstream.
type changeNotifier struct {
	snapshots SnapshotStore
	publisher events.Publisher
	logger    zerolog.Logger
}

func (n changeNotifier) announce(ctx context.Context, eventType events.Type, entityID, actorID string) {
	if n.snapshots != nil {
		if err := n.snapshots.Invalidate(ctx); err != nil {
			n.logger.Warn().Err(err).Str("event", string(eventType)).Msg("failed to invalidate snapshot cache")
		}
	}
	if n.publisher != nil {
		if err := n.publisher.Publish(ctx, eventType, entityID, actorID); err != nil {
			n.logger.Warn().Err(err).Str("event", string(eventType)).Msg("failed to publish change event")
		}
	}
}
