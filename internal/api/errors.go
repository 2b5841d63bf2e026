package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so internal
// error types never decide the response on their own.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrValidation),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidOperation),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe description of err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return "The requested task was not found"
	case errors.Is(err, service.ErrValidation):
		return "One or more validation errors occurred"
	case errors.Is(err, domain.ErrEmptyTitle):
		return "Title cannot be empty"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "Invalid status value"
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"
	case errors.Is(err, service.ErrInvalidOperation):
		return "The requested status change is not allowed"
	case errors.Is(err, store.ErrDuplicate):
		return "Task already exists"
	default:
		return "An unexpected error occurred"
	}
}

// errorTitle returns the short title shown for a status code.
func errorTitle(status int, err error) string {
	switch status {
	case http.StatusNotFound:
		return "Task Not Found"
	case http.StatusBadRequest:
		if errors.Is(err, service.ErrValidation) {
			return "Validation Failed"
		}
		return "Bad Request"
	case http.StatusConflict:
		return "Conflict"
	default:
		return "Internal Server Error"
	}
}

// NewErrorResponse builds the sanitized response body for err. Field errors
// are included for validation failures.
func NewErrorResponse(err error) shared.ErrorResponse {
	status := MapErrorToStatusCode(err)
	resp := shared.ErrorResponse{
		Title:  errorTitle(status, err),
		Status: status,
		Detail: GetSafeErrorMessage(err),
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}
	return resp
}
