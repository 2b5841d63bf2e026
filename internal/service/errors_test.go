package service

import (
	"errors"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are different", func(t *testing.T) {
		assert.False(t, errors.Is(ErrTaskNotFound, ErrInvalidOperation))
		assert.False(t, errors.Is(ErrInvalidOperation, ErrValidation))
		assert.False(t, errors.Is(ErrValidation, ErrTaskNotFound))
	})
}

func TestTaskServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TaskServiceError
		expected string
	}{
		{
			name: "with underlying error",
			err: &TaskServiceError{
				Operation: "create_task",
				Message:   "failed to save task",
				Err:       errors.New("database connection failed"),
			},
			expected: "task service create_task failed: failed to save task: database connection failed",
		},
		{
			name: "without underlying error",
			err: &TaskServiceError{
				Operation: "create_handlers",
				Message:   "repo cannot be nil",
			},
			expected: "task service create_handlers failed: repo cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNewTaskServiceError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, NewTaskServiceError("op", "msg", nil))
	})

	t.Run("store not found maps to service not found", func(t *testing.T) {
		err := NewTaskServiceError("get_task", "failed", store.ErrTaskNotFound)
		assert.Same(t, ErrTaskNotFound, err)
	})

	t.Run("service sentinels pass through", func(t *testing.T) {
		wrapped := errors.Join(ErrInvalidOperation, errors.New("detail"))
		assert.Equal(t, wrapped, NewTaskServiceError("op", "msg", wrapped))
		assert.Same(t, ErrTaskNotFound, NewTaskServiceError("op", "msg", ErrTaskNotFound))
	})

	t.Run("domain invalid argument passes through", func(t *testing.T) {
		err := NewTaskServiceError("create_task", "invalid task", domain.ErrEmptyTitle)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		var svcErr *TaskServiceError
		assert.False(t, errors.As(err, &svcErr))
	})

	t.Run("unexpected errors are wrapped", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewTaskServiceError("update_task", "failed to save task", cause)

		var svcErr *TaskServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "update_task", svcErr.Operation)
		assert.ErrorIs(t, err, cause)
	})
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"title":    "title is required",
		"priority": "priority must be between 1 and 5",
	}}

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t,
		"validation failed: priority: priority must be between 1 and 5; title: title is required",
		err.Error())
}
