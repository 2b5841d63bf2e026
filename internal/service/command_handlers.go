package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// CreateTaskHandler creates a task and returns its identifier.
type CreateTaskHandler struct {
	repo   TaskRepository
	logger *slog.Logger
}

// NewCreateTaskHandler creates a CreateTaskHandler.
func NewCreateTaskHandler(repo TaskRepository, log *slog.Logger) *CreateTaskHandler {
	return &CreateTaskHandler{repo: repo, logger: componentLogger(log, "create_task_handler")}
}

var _ CommandResultHandler[CreateTaskCommand, uuid.UUID] = (*CreateTaskHandler)(nil)

// Handle implements CommandResultHandler.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	task, err := domain.NewTask(cmd.Title, cmd.Description, cmd.DueDate, cmd.Priority)
	if err != nil {
		log.Debug("rejected task construction", "error", err)
		return uuid.Nil, NewTaskServiceError("create_task", "invalid task", err)
	}

	if err := h.repo.Add(ctx, task); err != nil {
		log.Error("failed to add task", "error", err, "task_id", task.ID())
		return uuid.Nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", "task_id", task.ID(), "priority", task.Priority())
	return task.ID(), nil
}

// UpdateTaskHandler replaces a task's details and applies an optional status
// change.
type UpdateTaskHandler struct {
	repo   TaskRepository
	logger *slog.Logger
}

// NewUpdateTaskHandler creates an UpdateTaskHandler.
func NewUpdateTaskHandler(repo TaskRepository, log *slog.Logger) *UpdateTaskHandler {
	return &UpdateTaskHandler{repo: repo, logger: componentLogger(log, "update_task_handler")}
}

var _ CommandHandler[UpdateTaskCommand] = (*UpdateTaskHandler)(nil)

// Handle implements CommandHandler. The task is persisted whether or not its
// status changed.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	log := logger.FromContextOrDefault(ctx, h.logger).With("task_id", cmd.ID)

	task, err := h.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		log.Error("failed to load task", "error", err)
		return NewTaskServiceError("update_task", "failed to load task", err)
	}
	if task == nil {
		return ErrTaskNotFound
	}

	if err := task.UpdateDetails(cmd.Title, cmd.Description, cmd.DueDate, cmd.Priority); err != nil {
		return NewTaskServiceError("update_task", "invalid task details", err)
	}

	if cmd.Status != nil && *cmd.Status != task.Status() {
		transition, ok := transitionTo(*cmd.Status)
		if !ok {
			return fmt.Errorf("%w: %d", domain.ErrInvalidStatus, int(*cmd.Status))
		}
		if err := transition(task); err != nil {
			log.Debug("rejected status change", "error", err, "status", cmd.Status.String())
			return fmt.Errorf("%w: status change not allowed: %w", ErrInvalidOperation, err)
		}
	}

	if err := h.repo.Update(ctx, task); err != nil {
		log.Error("failed to update task", "error", err)
		return NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Info("task updated", "status", task.Status().String())
	return nil
}

// transitionTo returns the entity method that moves a task to target.
// The entity currently accepts every change; a non-nil error from a
// transition is reported as ErrInvalidOperation.
func transitionTo(target domain.TaskStatus) (func(*domain.Task) error, bool) {
	var apply func(*domain.Task)
	switch target {
	case domain.TaskStatusInProgress:
		apply = (*domain.Task).MarkAsInProgress
	case domain.TaskStatusCompleted:
		apply = (*domain.Task).MarkAsCompleted
	case domain.TaskStatusCancelled:
		apply = (*domain.Task).Cancel
	case domain.TaskStatusPending:
		apply = (*domain.Task).SetPending
	default:
		return nil, false
	}

	return func(t *domain.Task) error {
		apply(t)
		return nil
	}, true
}

// CompleteTaskHandler marks a task as completed.
type CompleteTaskHandler struct {
	repo   TaskRepository
	logger *slog.Logger
}

// NewCompleteTaskHandler creates a CompleteTaskHandler.
func NewCompleteTaskHandler(repo TaskRepository, log *slog.Logger) *CompleteTaskHandler {
	return &CompleteTaskHandler{repo: repo, logger: componentLogger(log, "complete_task_handler")}
}

var _ CommandHandler[CompleteTaskCommand] = (*CompleteTaskHandler)(nil)

// Handle implements CommandHandler. Completing an already completed task
// records nothing new but still persists the task.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
	log := logger.FromContextOrDefault(ctx, h.logger).With("task_id", cmd.ID)

	task, err := h.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		log.Error("failed to load task", "error", err)
		return NewTaskServiceError("complete_task", "failed to load task", err)
	}
	if task == nil {
		return ErrTaskNotFound
	}

	task.MarkAsCompleted()

	if err := h.repo.Update(ctx, task); err != nil {
		log.Error("failed to update task", "error", err)
		return NewTaskServiceError("complete_task", "failed to save task", err)
	}

	log.Info("task completed")
	return nil
}

func componentLogger(log *slog.Logger, component string) *slog.Logger {
	if log == nil {
		log = slog.Default()
	}
	return log.With("component", component)
}
