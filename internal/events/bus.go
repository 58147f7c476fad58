// Package events publishes gateway domain events to NATS and reacts to changes
// announced by other gateway nodes or by the platform.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/observability"
)

// Type names a domain event.
type Type string

const (
	AssignmentDeleted  Type = "assignment.deleted"
	SubmissionGraded   Type = "submission.graded"
	AssignmentsChanged Type = "assignments.changed"
)

const queueGroup = "skillbridge-gateway"

// Event is the wire payload exchanged on the bus.
type Event struct {
	Source   string    `json:"source"`
	Type     Type      `json:"type"`
	EntityID string    `json:"entity_id"`
	ActorID  string    `json:"actor_id,omitempty"`
	SentAt   time.Time `json:"sent_at"`
}

// Publisher emits domain events.
type Publisher interface {
	Publish(ctx context.Context, eventType Type, entityID, actorID string) error
}

// Handler reacts to an event received from the bus.
type Handler func(ctx context.Context, event Event)

// Bus is a NATS backed Publisher. A nil connection makes it a no-op.
type Bus struct {
	conn    *nats.Conn
	subject string
	nodeID  string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewBus creates a bus publishing on subject.
func NewBus(conn *nats.Conn, subject string, logger zerolog.Logger) *Bus {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "skillbridge.events"
	}
	return &Bus{
		conn:    conn,
		subject: subject,
		nodeID:  uuid.NewString(),
		logger:  logger.With().Str("component", "event_bus").Logger(),
		now:     time.Now,
	}
}

// Publish sends an event stamped with this node's id.
func (b *Bus) Publish(ctx context.Context, eventType Type, entityID, actorID string) error {
	if b.conn == nil {
		return nil
	}

	payload, err := json.Marshal(Event{
		Source:   b.nodeID,
		Type:     eventType,
		EntityID: entityID,
		ActorID:  actorID,
		SentAt:   b.now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := b.conn.Publish(b.subject, payload); err != nil {
		observability.EventsPublished().WithLabelValues(string(eventType), "error").Inc()
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	observability.EventsPublished().WithLabelValues(string(eventType), "ok").Inc()
	b.logger.Debug().Str("type", string(eventType)).Str("entity_id", entityID).Msg("event published")
	return nil
}

// Listen subscribes handler until ctx is cancelled. Events this node published are skipped.
func (b *Bus) Listen(ctx context.Context, handler Handler) error {
	if b.conn == nil {
		return nil
	}

	sub, err := b.conn.QueueSubscribe(b.subject, queueGroup, func(msg *nats.Msg) {
		b.dispatch(ctx, msg.Data, handler)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.subject, err)
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			b.logger.Warn().Err(err).Msg("failed to drain event subscription")
		}
	}()

	return nil
}

func (b *Bus) dispatch(ctx context.Context, data []byte, handler Handler) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		b.logger.Warn().Err(err).Msg("invalid event payload")
		return
	}

	if event.Source == b.nodeID {
		return
	}

	handler(ctx, event)
}
