package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// Common service errors - sentinel errors used across the task handlers.
// Callers check for them with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrTaskNotFound indicates that the referenced task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidOperation indicates an operation that is not allowed in the
	// task's current state, such as a rejected status change.
	// API layer should map this to HTTP 409 Conflict.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrValidation indicates that a command failed field validation.
	// API layer should map this to HTTP 400 Bad Request.
	ErrValidation = errors.New("validation failed")
)

// ValidationError lists the command fields that failed validation, keyed by
// their JSON name.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range sortedKeys(e.Fields) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap returns ErrValidation so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TaskServiceError wraps unexpected errors from the task handlers with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Known sentinel errors are returned without wrapping so that their kind
// survives unchanged to the caller.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, store.ErrTaskNotFound):
		// Store-level not found maps to the service-level sentinel
		return ErrTaskNotFound
	case errors.Is(err, ErrInvalidOperation),
		errors.Is(err, ErrValidation),
		errors.Is(err, domain.ErrInvalidArgument):
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
