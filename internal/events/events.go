package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// Handler processes one event variant.
type Handler[E domain.DomainEvent] interface {
	// Handle processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	Handle(ctx context.Context, event E) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[E domain.DomainEvent] func(ctx context.Context, event E) error

// Handle calls f(ctx, event).
func (f HandlerFunc[E]) Handle(ctx context.Context, event E) error {
	return f(ctx, event)
}

// EventHandler defines an interface for components that react to every
// event variant in the same way (publishers, metrics, broadcasters).
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event domain.DomainEvent) error
}

// Envelope is the wire representation of a domain event, shared by every
// subscriber that sends events out of the process.
type Envelope struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is the event kind, e.g. "task.completed"
	Type domain.EventKind `json:"type"`

	// TaskID is the task the event belongs to
	TaskID uuid.UUID `json:"taskId"`

	// Payload contains the variant-specific fields serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// OccurredAt is when the event was recorded
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEnvelope wraps a domain event for transport.
func NewEnvelope(event domain.DomainEvent) (*Envelope, error) {
	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event.Kind(), err)
	}

	return &Envelope{
		ID:         event.EventID(),
		Type:       event.Kind(),
		TaskID:     event.AggregateID(),
		Payload:    payloadBytes,
		OccurredAt: event.OccurredAt(),
	}, nil
}

// UnmarshalPayload decodes the envelope payload into the provided structure.
func (e *Envelope) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}
