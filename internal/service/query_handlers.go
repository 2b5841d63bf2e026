package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// GetTaskByIDQuery requests a single task.
type GetTaskByIDQuery struct {
	ID uuid.UUID
}

// GetTasksQuery requests the task list, optionally filtered by status.
type GetTasksQuery struct {
	Status *domain.TaskStatus
}

// GetOverdueTasksQuery requests unfinished tasks that are past due.
type GetOverdueTasksQuery struct{}

// GetTaskStatsQuery requests the number of tasks per status.
type GetTaskStatsQuery struct{}

// GetTaskByIDHandler returns the detail projection of one task.
type GetTaskByIDHandler struct {
	repo  TaskRepository
	clock Clock
}

// NewGetTaskByIDHandler creates a GetTaskByIDHandler. A nil clock uses the
// system clock.
func NewGetTaskByIDHandler(repo TaskRepository, clock Clock) *GetTaskByIDHandler {
	return &GetTaskByIDHandler{repo: repo, clock: clock}
}

var _ QueryHandler[GetTaskByIDQuery, *TaskDetailDTO] = (*GetTaskByIDHandler)(nil)

// Handle implements QueryHandler. It returns nil with no error when the
// task does not exist.
func (h *GetTaskByIDHandler) Handle(ctx context.Context, q GetTaskByIDQuery) (*TaskDetailDTO, error) {
	task, err := h.repo.GetByID(ctx, q.ID)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to load task", err)
	}
	if task == nil {
		return nil, nil
	}

	dto := NewTaskDetailDTO(task, h.clock.now())
	return &dto, nil
}

// GetTasksHandler returns the task list projection.
type GetTasksHandler struct {
	repo TaskRepository
}

// NewGetTasksHandler creates a GetTasksHandler.
func NewGetTasksHandler(repo TaskRepository) *GetTasksHandler {
	return &GetTasksHandler{repo: repo}
}

var _ QueryHandler[GetTasksQuery, []TaskDTO] = (*GetTasksHandler)(nil)

// Handle implements QueryHandler.
func (h *GetTasksHandler) Handle(ctx context.Context, q GetTasksQuery) ([]TaskDTO, error) {
	var (
		tasks []*domain.Task
		err   error
	)
	if q.Status != nil {
		tasks, err = h.repo.GetByStatus(ctx, *q.Status)
	} else {
		tasks, err = h.repo.GetAll(ctx)
	}
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to load tasks", err)
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, NewTaskDTO(t))
	}
	return dtos, nil
}

// GetOverdueTasksHandler returns overdue tasks, earliest due first.
type GetOverdueTasksHandler struct {
	repo  TaskRepository
	clock Clock
}

// NewGetOverdueTasksHandler creates a GetOverdueTasksHandler. A nil clock
// uses the system clock.
func NewGetOverdueTasksHandler(repo TaskRepository, clock Clock) *GetOverdueTasksHandler {
	return &GetOverdueTasksHandler{repo: repo, clock: clock}
}

var _ QueryHandler[GetOverdueTasksQuery, []TaskDetailDTO] = (*GetOverdueTasksHandler)(nil)

// Handle implements QueryHandler.
func (h *GetOverdueTasksHandler) Handle(ctx context.Context, _ GetOverdueTasksQuery) ([]TaskDetailDTO, error) {
	now := h.clock.now()

	tasks, err := h.repo.GetOverdue(ctx, now)
	if err != nil {
		return nil, NewTaskServiceError("list_overdue_tasks", "failed to load tasks", err)
	}

	dtos := make([]TaskDetailDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, NewTaskDetailDTO(t, now))
	}
	return dtos, nil
}

// GetTaskStatsHandler counts tasks per status.
type GetTaskStatsHandler struct {
	repo   TaskRepository
	logger *slog.Logger
}

// NewGetTaskStatsHandler creates a GetTaskStatsHandler.
func NewGetTaskStatsHandler(repo TaskRepository, log *slog.Logger) *GetTaskStatsHandler {
	return &GetTaskStatsHandler{repo: repo, logger: componentLogger(log, "task_stats_handler")}
}

var _ QueryHandler[GetTaskStatsQuery, TaskStatsDTO] = (*GetTaskStatsHandler)(nil)

// Handle implements QueryHandler.
func (h *GetTaskStatsHandler) Handle(ctx context.Context, _ GetTaskStatsQuery) (TaskStatsDTO, error) {
	var stats TaskStatsDTO

	for _, status := range domain.AllTaskStatuses {
		n, err := h.repo.CountByStatus(ctx, status)
		if err != nil {
			logger.FromContextOrDefault(ctx, h.logger).Error("failed to count tasks",
				"error", err,
				"status", status.String())
			return TaskStatsDTO{}, NewTaskServiceError("task_stats", "failed to count tasks", err)
		}

		switch status {
		case domain.TaskStatusPending:
			stats.Pending = n
		case domain.TaskStatusInProgress:
			stats.InProgress = n
		case domain.TaskStatusCompleted:
			stats.Completed = n
		case domain.TaskStatusCancelled:
			stats.Cancelled = n
		}
		stats.Total += n
	}

	return stats, nil
}
