package store

import (
	"errors"
	"fmt"
)

// Errors returned by every TaskStore implementation. Callers match them with
// errors.Is.
var (
	// ErrNotFound is the parent of every "does not exist" error.
	ErrNotFound = errors.New("entity not found")

	// ErrTaskNotFound is returned when no task has the requested ID.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrDuplicate is returned when a task with the same ID is already stored.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects a row through a
	// constraint, such as an over-long title or an out-of-range priority.
	ErrInvalidEntity = errors.New("invalid entity")
)

// StoreError records which store operation failed on which entity.
type StoreError struct {
	Entity    string // e.g. "task"
	Operation string // e.g. "create", "list_overdue"
	Message   string
	Err       error
}

// NewStoreError creates a StoreError wrapping err, which may be nil.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped error so errors.Is sees store sentinels and
// driver errors alike.
func (e *StoreError) Unwrap() error {
	return e.Err
}
