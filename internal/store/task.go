package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Implementations persist the fields exposed by domain.Task.State exactly
// and rebuild tasks with domain.RestoreTask. They never touch pending domain
// events; dispatching those is the caller's job.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrDuplicate if a task with the same ID already exists.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update saves changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// List retrieves all tasks ordered by creation time, newest first.
	// Returns an empty slice if there are none.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByStatus retrieves tasks with the given status ordered by creation
	// time, newest first.
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// ListOverdue retrieves tasks whose due date is before now and whose
	// status is not Completed, ordered by due date, earliest first.
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error)

	// CountByStatus returns the number of tasks with the given status.
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int, error)
}
