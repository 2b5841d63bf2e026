package service

import (
	"log/slog"

	"github.com/google/uuid"
)

// TaskHandlers holds one handler per task command and query. It is built
// once at startup and shared by every request.
type TaskHandlers struct {
	Validator *CommandValidator

	Create   CommandResultHandler[CreateTaskCommand, uuid.UUID]
	Update   CommandHandler[UpdateTaskCommand]
	Complete CommandHandler[CompleteTaskCommand]

	GetByID QueryHandler[GetTaskByIDQuery, *TaskDetailDTO]
	List    QueryHandler[GetTasksQuery, []TaskDTO]
	Overdue QueryHandler[GetOverdueTasksQuery, []TaskDetailDTO]
	Stats   QueryHandler[GetTaskStatsQuery, TaskStatsDTO]
}

// NewTaskHandlers wires every task handler to repo.
// It returns an error if repo is nil. A nil clock uses the system clock.
func NewTaskHandlers(repo TaskRepository, clock Clock, log *slog.Logger) (*TaskHandlers, error) {
	if repo == nil {
		return nil, &TaskServiceError{
			Operation: "create_handlers",
			Message:   "repo cannot be nil",
		}
	}

	return &TaskHandlers{
		Validator: NewCommandValidator(clock),
		Create:    NewCreateTaskHandler(repo, log),
		Update:    NewUpdateTaskHandler(repo, log),
		Complete:  NewCompleteTaskHandler(repo, log),
		GetByID:   NewGetTaskByIDHandler(repo, clock),
		List:      NewGetTasksHandler(repo),
		Overdue:   NewGetOverdueTasksHandler(repo, clock),
		Stats:     NewGetTaskStatsHandler(repo, log),
	}, nil
}
