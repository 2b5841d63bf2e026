package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskCommand carries the fields for a new task.
type CreateTaskCommand struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"max=1000"`
	DueDate     *time.Time `json:"dueDate"     validate:"omitempty,future"`
	Priority    int        `json:"priority"    validate:"min=1,max=5"`
}

// UpdateTaskCommand replaces a task's details and optionally moves it to a
// new status.
type UpdateTaskCommand struct {
	ID          uuid.UUID          `json:"id"          validate:"required"`
	Title       string             `json:"title"       validate:"required,max=200"`
	Description string             `json:"description" validate:"max=1000"`
	DueDate     *time.Time         `json:"dueDate"     validate:"omitempty,future"`
	Priority    int                `json:"priority"    validate:"min=1,max=5"`
	Status      *domain.TaskStatus `json:"status"      validate:"omitempty,task_status"`
}

// CompleteTaskCommand marks a task as completed.
type CompleteTaskCommand struct {
	ID uuid.UUID `json:"id" validate:"required"`
}
