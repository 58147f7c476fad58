package events

import (
	"context"

	"github.com/rs/zerolog"
)

// Invalidator drops cached data derived from platform state.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// InvalidateOnChange returns a Handler that invalidates cached snapshots for every
// event that changes assignments or submissions.
func InvalidateOnChange(target Invalidator, logger zerolog.Logger) Handler {
	log := logger.With().Str("component", "snapshot_invalidator").Logger()
	return func(ctx context.Context, event Event) {
		switch event.Type {
		case AssignmentDeleted, SubmissionGraded, AssignmentsChanged:
		default:
			return
		}

		if err := target.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Str("type", string(event.Type)).Msg("failed to invalidate snapshots")
			return
		}
		log.Debug().Str("type", string(event.Type)).Str("entity_id", event.EntityID).Msg("snapshots invalidated")
	}
}
