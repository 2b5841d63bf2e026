package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies a domain event variant.
type EventKind string

// Known event kinds
const (
	EventTaskCreated   EventKind = "task.created"
	EventTaskUpdated   EventKind = "task.updated"
	EventTaskCompleted EventKind = "task.completed"
)

// DomainEvent is an immutable record of a state change on an aggregate.
// Implementations are value types, so every holder works on its own copy.
type DomainEvent interface {
	// EventID returns the unique identifier of this occurrence.
	EventID() uuid.UUID

	// OccurredAt returns when the event was recorded, in UTC.
	OccurredAt() time.Time

	// Kind returns the variant tag.
	Kind() EventKind

	// AggregateID returns the ID of the task that produced the event.
	AggregateID() uuid.UUID
}

// eventHeader holds the fields shared by every event variant.
type eventHeader struct {
	ID         uuid.UUID `json:"id"`
	OccurredOn time.Time `json:"occurredAt"`
}

func newEventHeader() eventHeader {
	return eventHeader{
		ID:         uuid.New(),
		OccurredOn: time.Now().UTC(),
	}
}

// EventID implements DomainEvent.
func (h eventHeader) EventID() uuid.UUID { return h.ID }

// OccurredAt implements DomainEvent.
func (h eventHeader) OccurredAt() time.Time { return h.OccurredOn }

// TaskCreatedEvent is recorded once when a task is constructed.
type TaskCreatedEvent struct {
	eventHeader
	TaskID uuid.UUID `json:"taskId"`
	Title  string    `json:"title"`
}

// NewTaskCreatedEvent builds a TaskCreatedEvent stamped with the current time.
func NewTaskCreatedEvent(taskID uuid.UUID, title string) TaskCreatedEvent {
	return TaskCreatedEvent{eventHeader: newEventHeader(), TaskID: taskID, Title: title}
}

// Kind implements DomainEvent.
func (e TaskCreatedEvent) Kind() EventKind { return EventTaskCreated }

// AggregateID implements DomainEvent.
func (e TaskCreatedEvent) AggregateID() uuid.UUID { return e.TaskID }

// TaskUpdatedEvent is recorded when a task's details actually change.
type TaskUpdatedEvent struct {
	eventHeader
	TaskID uuid.UUID `json:"taskId"`
	Title  string    `json:"title"`
}

// NewTaskUpdatedEvent builds a TaskUpdatedEvent stamped with the current time.
func NewTaskUpdatedEvent(taskID uuid.UUID, title string) TaskUpdatedEvent {
	return TaskUpdatedEvent{eventHeader: newEventHeader(), TaskID: taskID, Title: title}
}

// Kind implements DomainEvent.
func (e TaskUpdatedEvent) Kind() EventKind { return EventTaskUpdated }

// AggregateID implements DomainEvent.
func (e TaskUpdatedEvent) AggregateID() uuid.UUID { return e.TaskID }

// TaskCompletedEvent is recorded when a task first moves to Completed.
type TaskCompletedEvent struct {
	eventHeader
	TaskID      uuid.UUID `json:"taskId"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completedAt"`
}

// NewTaskCompletedEvent builds a TaskCompletedEvent. completedAt is stored in UTC.
func NewTaskCompletedEvent(taskID uuid.UUID, title string, completedAt time.Time) TaskCompletedEvent {
	return TaskCompletedEvent{
		eventHeader: newEventHeader(),
		TaskID:      taskID,
		Title:       title,
		CompletedAt: completedAt.UTC(),
	}
}

// Kind implements DomainEvent.
func (e TaskCompletedEvent) Kind() EventKind { return EventTaskCompleted }

// AggregateID implements DomainEvent.
func (e TaskCompletedEvent) AggregateID() uuid.UUID { return e.TaskID }
