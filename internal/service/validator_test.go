package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandValidator_CreateTaskCommand(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	v := NewCommandValidator(fixedClock(now))

	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	tests := []struct {
		name        string
		cmd         CreateTaskCommand
		wantFields  []string
		wantMessage string
	}{
		{
			name: "valid",
			cmd:  CreateTaskCommand{Title: "Task", Description: "d", DueDate: &future, Priority: 3},
		},
		{
			name: "valid without due date",
			cmd:  CreateTaskCommand{Title: "Task", Priority: 1},
		},
		{
			name:        "missing title",
			cmd:         CreateTaskCommand{Priority: 1},
			wantFields:  []string{"title"},
			wantMessage: "title is required",
		},
		{
			name:        "title too long",
			cmd:         CreateTaskCommand{Title: strings.Repeat("a", 201), Priority: 1},
			wantFields:  []string{"title"},
			wantMessage: "title must not exceed 200 characters",
		},
		{
			name:        "description too long",
			cmd:         CreateTaskCommand{Title: "t", Description: strings.Repeat("a", 1001), Priority: 1},
			wantFields:  []string{"description"},
			wantMessage: "description must not exceed 1000 characters",
		},
		{
			name:        "due date in the past",
			cmd:         CreateTaskCommand{Title: "t", DueDate: &past, Priority: 1},
			wantFields:  []string{"dueDate"},
			wantMessage: "dueDate must be in the future",
		},
		{
			name:        "due date equal to now",
			cmd:         CreateTaskCommand{Title: "t", DueDate: &now, Priority: 1},
			wantFields:  []string{"dueDate"},
			wantMessage: "dueDate must be in the future",
		},
		{
			name:        "priority too low",
			cmd:         CreateTaskCommand{Title: "t", Priority: 0},
			wantFields:  []string{"priority"},
			wantMessage: "priority must be between 1 and 5",
		},
		{
			name:        "priority too high",
			cmd:         CreateTaskCommand{Title: "t", Priority: 6},
			wantFields:  []string{"priority"},
			wantMessage: "priority must be between 1 and 5",
		},
		{
			name:       "several failures reported together",
			cmd:        CreateTaskCommand{Priority: 9, DueDate: &past},
			wantFields: []string{"title", "priority", "dueDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.cmd)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Len(t, vErr.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, vErr.Fields, f)
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, vErr.Fields[tt.wantFields[0]])
			}
		})
	}
}

func TestCommandValidator_UpdateTaskCommand(t *testing.T) {
	v := NewCommandValidator(nil)
	id := uuid.New()

	t.Run("valid without status", func(t *testing.T) {
		assert.NoError(t, v.Validate(UpdateTaskCommand{ID: id, Title: "t", Priority: 2}))
	})

	t.Run("valid with status", func(t *testing.T) {
		cmd := UpdateTaskCommand{ID: id, Title: "t", Priority: 2, Status: statusPtr(domain.TaskStatusCancelled)}
		assert.NoError(t, v.Validate(cmd))
	})

	t.Run("missing id", func(t *testing.T) {
		err := v.Validate(UpdateTaskCommand{Title: "t", Priority: 2})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "id is required", vErr.Fields["id"])
	})

	t.Run("unknown status", func(t *testing.T) {
		for _, raw := range []int{0, 5, -1} {
			cmd := UpdateTaskCommand{ID: id, Title: "t", Priority: 2, Status: statusPtr(domain.TaskStatus(raw))}
			err := v.Validate(cmd)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, "status %d", raw)
			assert.Equal(t, "invalid status value", vErr.Fields["status"])
		}
	})
}

func TestCommandValidator_CompleteTaskCommand(t *testing.T) {
	v := NewCommandValidator(nil)

	assert.NoError(t, v.Validate(CompleteTaskCommand{ID: uuid.New()}))
	assert.ErrorIs(t, v.Validate(CompleteTaskCommand{}), ErrValidation)
}
