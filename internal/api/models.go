package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    int        `json:"priority"`
}

func (req CreateTaskRequest) command() service.CreateTaskCommand {
	return service.CreateTaskCommand{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. The task ID comes
// from the path. A missing status leaves the current status unchanged.
type UpdateTaskRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	DueDate     *time.Time         `json:"dueDate"`
	Priority    int                `json:"priority"`
	Status      *domain.TaskStatus `json:"status"`
}

func (req UpdateTaskRequest) command(id uuid.UUID) service.UpdateTaskCommand {
	return service.UpdateTaskCommand{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
