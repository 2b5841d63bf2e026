// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrInvalidArgument is returned when input that reached an entity is not
	// acceptable, even though upstream validation should have rejected it.
	// More specific errors below wrap it.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransitionNotAllowed is reserved for status changes an entity refuses.
	// No transition method raises it yet; callers translate it into an
	// invalid-operation error when it does appear.
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)

// Task-specific validation errors
var (
	// ErrEmptyTitle is returned when a task title is empty or whitespace only.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrInvalidArgument)

	// ErrInvalidStatus is returned when a status value is not one of the
	// known TaskStatus values.
	ErrInvalidStatus = fmt.Errorf("%w: invalid task status", ErrInvalidArgument)
)
