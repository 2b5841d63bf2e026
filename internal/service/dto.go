package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// TaskDTO is the list projection of a task.
type TaskDTO struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"dueDate"`
	Priority    int               `json:"priority"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   *time.Time        `json:"updatedAt"`
}

// TaskDetailDTO is the single-task projection. IsOverdue is computed when
// the projection is built and never stored.
type TaskDetailDTO struct {
	TaskDTO
	IsOverdue bool `json:"isOverdue"`
}

// TaskStatsDTO holds the number of tasks in each status.
type TaskStatsDTO struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}

// NewTaskDTO projects a task into its list shape.
func NewTaskDTO(t *domain.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status(),
		DueDate:     t.DueDate(),
		Priority:    t.Priority(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

// NewTaskDetailDTO projects a task into its detail shape, evaluating the
// overdue flag against now.
func NewTaskDetailDTO(t *domain.Task, now time.Time) TaskDetailDTO {
	return TaskDetailDTO{
		TaskDTO:   NewTaskDTO(t),
		IsOverdue: t.IsOverdue(now),
	}
}
