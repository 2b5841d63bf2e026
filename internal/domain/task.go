package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority bounds
const (
	MinPriority = 1
	MaxPriority = 5
)

// Task is the aggregate root of the application. Its fields are only
// reachable through methods so that every write goes through the invariants:
// the title is never blank, priority stays within [MinPriority, MaxPriority]
// and the due date is always UTC.
type Task struct {
	id          uuid.UUID
	title       string
	description string
	status      TaskStatus
	dueDate     *time.Time
	priority    int
	createdAt   time.Time
	updatedAt   *time.Time

	domainEvents []DomainEvent
}

// TaskState is a plain snapshot of a task's persisted fields.
// Stores use it to read and rebuild tasks.
type TaskState struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	DueDate     *time.Time
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// NewTask creates a pending task and records a TaskCreatedEvent.
// Returns ErrEmptyTitle if the title is blank. Out-of-range priorities are
// clamped rather than rejected.
func NewTask(title, description string, dueDate *time.Time, priority int) (*Task, error) {
	if isBlank(title) {
		return nil, ErrEmptyTitle
	}

	t := &Task{
		id:          uuid.New(),
		title:       title,
		description: description,
		status:      TaskStatusPending,
		dueDate:     normalizeDueDate(dueDate),
		priority:    ClampPriority(priority),
		createdAt:   time.Now().UTC(),
	}

	t.addDomainEvent(NewTaskCreatedEvent(t.id, t.title))
	return t, nil
}

// RestoreTask rebuilds a task from persisted state without recording events.
// Priority and due date are normalized the same way as on any other write.
func RestoreTask(s TaskState) *Task {
	return &Task{
		id:          s.ID,
		title:       s.Title,
		description: s.Description,
		status:      s.Status,
		dueDate:     normalizeDueDate(s.DueDate),
		priority:    ClampPriority(s.Priority),
		createdAt:   s.CreatedAt.UTC(),
		updatedAt:   copyTime(s.UpdatedAt),
	}
}

// State returns a snapshot of the task's fields.
func (t *Task) State() TaskState {
	return TaskState{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Status:      t.status,
		DueDate:     copyTime(t.dueDate),
		Priority:    t.priority,
		CreatedAt:   t.createdAt,
		UpdatedAt:   copyTime(t.updatedAt),
	}
}

// ID returns the task's unique identifier.
func (t *Task) ID() uuid.UUID { return t.id }

// Title returns the task title.
func (t *Task) Title() string { return t.title }

// Description returns the task description.
func (t *Task) Description() string { return t.description }

// Status returns the current status.
func (t *Task) Status() TaskStatus { return t.status }

// DueDate returns a copy of the due date, or nil when none is set.
func (t *Task) DueDate() *time.Time { return copyTime(t.dueDate) }

// Priority returns the task priority.
func (t *Task) Priority() int { return t.priority }

// CreatedAt returns when the task was created.
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the task was last mutated, or nil if never.
func (t *Task) UpdatedAt() *time.Time { return copyTime(t.updatedAt) }

// UpdateDetails replaces title, description, due date and priority.
// If none of the four differs from the current value (after normalizing the
// due date to UTC and clamping the priority) the call is a no-op. Otherwise
// all four are applied, UpdatedAt is set and a TaskUpdatedEvent is recorded.
func (t *Task) UpdateDetails(title, description string, dueDate *time.Time, priority int) error {
	if isBlank(title) {
		return ErrEmptyTitle
	}

	utcDueDate := normalizeDueDate(dueDate)
	clamped := ClampPriority(priority)

	hasChanges := t.title != title ||
		t.description != description ||
		!sameTime(t.dueDate, utcDueDate) ||
		t.priority != clamped

	if !hasChanges {
		return nil
	}

	t.title = title
	t.description = description
	t.dueDate = utcDueDate
	t.priority = clamped
	t.touch()
	t.addDomainEvent(NewTaskUpdatedEvent(t.id, t.title))
	return nil
}

// MarkAsCompleted moves the task to Completed and records a
// TaskCompletedEvent. Calling it on a completed task does nothing.
func (t *Task) MarkAsCompleted() {
	if t.status == TaskStatusCompleted {
		return
	}

	t.status = TaskStatusCompleted
	t.touch()
	t.addDomainEvent(NewTaskCompletedEvent(t.id, t.title, *t.updatedAt))
}

// MarkAsInProgress sets the status to InProgress. No event is recorded.
func (t *Task) MarkAsInProgress() {
	t.status = TaskStatusInProgress
	t.touch()
}

// Cancel sets the status to Cancelled. No event is recorded.
func (t *Task) Cancel() {
	t.status = TaskStatusCancelled
	t.touch()
}

// SetPending sets the status back to Pending. No event is recorded.
func (t *Task) SetPending() {
	t.status = TaskStatusPending
	t.touch()
}

// IsOverdue reports whether the task has a due date before now and is not
// completed. Cancelled tasks past their due date count as overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.dueDate != nil &&
		t.dueDate.Before(now.UTC()) &&
		t.status != TaskStatusCompleted
}

// DomainEvents returns a copy of the pending events in the order they were
// recorded.
func (t *Task) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(t.domainEvents))
	copy(events, t.domainEvents)
	return events
}

// ClearDomainEvents drops all pending events. Called once they have been
// dispatched.
func (t *Task) ClearDomainEvents() {
	t.domainEvents = nil
}

func (t *Task) addDomainEvent(event DomainEvent) {
	t.domainEvents = append(t.domainEvents, event)
}

func (t *Task) touch() {
	now := time.Now().UTC()
	t.updatedAt = &now
}

// ClampPriority limits p to the range [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	return max(MinPriority, min(MaxPriority, p))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func normalizeDueDate(dueDate *time.Time) *time.Time {
	if dueDate == nil {
		return nil
	}
	utc := dueDate.UTC()
	return &utc
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
