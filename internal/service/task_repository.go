package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskRepository is the persistence boundary the task handlers consume.
type TaskRepository interface {
	// GetByID returns the task, or nil with no error when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetAll returns every task, newest first.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// GetByStatus returns tasks with the given status, newest first.
	GetByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// GetOverdue returns unfinished tasks due before now, earliest due first.
	GetOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error)

	// CountByStatus returns the number of tasks with the given status.
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int, error)

	// Add persists a new task and dispatches its pending events.
	Add(ctx context.Context, task *domain.Task) error

	// Update persists an existing task and dispatches its pending events.
	Update(ctx context.Context, task *domain.Task) error
}

// EventDispatcher delivers one domain event to its handlers.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event domain.DomainEvent) error
}

// TaskRepositoryAdapter adapts a store.TaskStore to TaskRepository.
// After every successful write it dispatches the task's pending events in
// the order they were recorded and then clears them. If a dispatch fails the
// error is returned and the events stay pending; the write is not undone.
type TaskRepositoryAdapter struct {
	store      store.TaskStore
	dispatcher EventDispatcher
	logger     *slog.Logger
}

// NewTaskRepositoryAdapter creates a new adapter.
// It returns an error if any of the required dependencies are nil.
func NewTaskRepositoryAdapter(
	taskStore store.TaskStore,
	dispatcher EventDispatcher,
	log *slog.Logger,
) (*TaskRepositoryAdapter, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{Operation: "create_repository", Message: "taskStore cannot be nil"}
	}
	if dispatcher == nil {
		return nil, &TaskServiceError{Operation: "create_repository", Message: "dispatcher cannot be nil"}
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskRepositoryAdapter{
		store:      taskStore,
		dispatcher: dispatcher,
		logger:     log.With("component", "task_repository"),
	}, nil
}

// Verify that TaskRepositoryAdapter implements TaskRepository
var _ TaskRepository = (*TaskRepositoryAdapter)(nil)

// GetByID implements TaskRepository.
func (r *TaskRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := r.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrTaskNotFound) {
		return nil, nil
	}
	return task, err
}

// GetAll implements TaskRepository.
func (r *TaskRepositoryAdapter) GetAll(ctx context.Context) ([]*domain.Task, error) {
	return r.store.List(ctx)
}

// GetByStatus implements TaskRepository.
func (r *TaskRepositoryAdapter) GetByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return r.store.ListByStatus(ctx, status)
}

// GetOverdue implements TaskRepository.
func (r *TaskRepositoryAdapter) GetOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	return r.store.ListOverdue(ctx, now)
}

// CountByStatus implements TaskRepository.
func (r *TaskRepositoryAdapter) CountByStatus(ctx context.Context, status domain.TaskStatus) (int, error) {
	return r.store.CountByStatus(ctx, status)
}

// Add implements TaskRepository.
func (r *TaskRepositoryAdapter) Add(ctx context.Context, task *domain.Task) error {
	return r.save(ctx, task, r.store.Create)
}

// Update implements TaskRepository.
func (r *TaskRepositoryAdapter) Update(ctx context.Context, task *domain.Task) error {
	return r.save(ctx, task, r.store.Update)
}

func (r *TaskRepositoryAdapter) save(
	ctx context.Context,
	task *domain.Task,
	write func(context.Context, *domain.Task) error,
) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	pending := task.DomainEvents()
	if err := write(ctx, task); err != nil {
		return err
	}

	for _, event := range pending {
		if err := r.dispatcher.Dispatch(ctx, event); err != nil {
			log.Error("failed to dispatch domain event",
				"error", err,
				"task_id", task.ID(),
				"event_id", event.EventID(),
				"event_type", event.Kind())
			return fmt.Errorf("dispatch %s for task %s: %w", event.Kind(), task.ID(), err)
		}
	}

	task.ClearDomainEvents()
	log.Debug("task saved",
		"task_id", task.ID(),
		"events_dispatched", len(pending))
	return nil
}
