package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskHandler serves the /tasks routes.
type TaskHandler struct {
	handlers *service.TaskHandlers
	events   http.Handler
	logger   *slog.Logger
}

// NewTaskHandler creates a TaskHandler. events serves the live event stream
// and may be nil, in which case the route is not registered.
func NewTaskHandler(handlers *service.TaskHandlers, events http.Handler, log *slog.Logger) *TaskHandler {
	if handlers == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("handlers cannot be nil for TaskHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskHandler{
		handlers: handlers,
		events:   events,
		logger:   log.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes mounts the task routes on r under /tasks.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/overdue", h.ListOverdueTasks)
		r.Get("/stats", h.GetTaskStats)
		if h.events != nil {
			r.Get("/events", h.events.ServeHTTP)
		}
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Patch("/{id}/complete", h.CompleteTask)
	})
}

// ListTasks handles GET /tasks with an optional status filter.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	var query service.GetTasksQuery

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			h.respondWithError(w, r, err)
			return
		}
		query.Status = &status
	}

	tasks, err := h.handlers.List.Handle(r.Context(), query)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// ListOverdueTasks handles GET /tasks/overdue.
func (h *TaskHandler) ListOverdueTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.handlers.Overdue.Handle(r.Context(), service.GetOverdueTasksQuery{})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTaskStats handles GET /tasks/stats.
func (h *TaskHandler) GetTaskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.handlers.Stats.Handle(r.Context(), service.GetTaskStatsQuery{})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.handlers.GetByID.Handle(r.Context(), service.GetTaskByIDQuery{ID: id})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if task == nil {
		h.respondWithError(w, r, service.ErrTaskNotFound)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks. It responds 201 with the new task ID as
// the body and a Location header pointing at the task.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := req.command()
	if err := h.handlers.Validator.Validate(cmd); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	id, err := h.handlers.Create.Handle(r.Context(), cmd)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	w.Header().Set("Location", r.URL.JoinPath(id.String()).Path)
	shared.RespondWithJSON(w, r, http.StatusCreated, id)
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !h.decode(w, r, &req) {
		return
	}

	cmd := req.command(id)
	if err := h.handlers.Validator.Validate(cmd); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	if err := h.handlers.Update.Handle(r.Context(), cmd); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteTask handles PATCH /tasks/{id}/complete.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	if err := h.handlers.Complete.Handle(r.Context(), service.CompleteTaskCommand{ID: id}); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathTaskID parses the {id} path parameter. On failure it writes a 400
// response and returns false.
func (h *TaskHandler) pathTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("invalid task ID in path", slog.String("id", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad Request", "Invalid task ID format")
		return uuid.Nil, false
	}
	return id, true
}

// decode reads the JSON body into v. On failure it writes a 400 response
// and returns false.
func (h *TaskHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := shared.DecodeJSON(w, r, v)
	if err == nil {
		return true
	}

	detail := "Request body is not valid JSON"
	if errors.Is(err, shared.ErrEmptyBody) {
		detail = "Request body is required"
	}
	shared.RespondWithErrorAndLog(w, r, shared.ErrorResponse{
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
	}, err)
	return false
}

func (h *TaskHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(err)
	if resp.Status == http.StatusConflict {
		shared.RespondWithErrorAndLog(w, r, resp, err, shared.WithElevatedLogLevel())
		return
	}
	shared.RespondWithErrorAndLog(w, r, resp, err)
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
