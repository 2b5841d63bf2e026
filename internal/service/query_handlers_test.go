package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskWithDueDate(t *testing.T, title string, due time.Time, status domain.TaskStatus) *domain.Task {
	t.Helper()
	return domain.RestoreTask(domain.TaskState{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		DueDate:   &due,
		Priority:  3,
		CreatedAt: due.Add(-72 * time.Hour),
	})
}

func TestGetTaskByIDHandler(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

	t.Run("absent task returns nil", func(t *testing.T) {
		repo := new(MockTaskRepository)
		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, nil)

		dto, err := NewGetTaskByIDHandler(repo, fixedClock(now)).Handle(ctx, GetTaskByIDQuery{ID: id})
		require.NoError(t, err)
		assert.Nil(t, dto)
	})

	tests := []struct {
		name        string
		due         time.Time
		status      domain.TaskStatus
		wantOverdue bool
	}{
		{"future due date", now.Add(time.Hour), domain.TaskStatusPending, false},
		{"past due pending", now.Add(-time.Hour), domain.TaskStatusPending, true},
		{"past due in progress", now.Add(-time.Hour), domain.TaskStatusInProgress, true},
		{"past due cancelled is still overdue", now.Add(-time.Hour), domain.TaskStatusCancelled, true},
		{"past due completed", now.Add(-time.Hour), domain.TaskStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := taskWithDueDate(t, "t", tt.due, tt.status)
			repo := new(MockTaskRepository)
			repo.On("GetByID", ctx, task.ID()).Return(task, nil)

			dto, err := NewGetTaskByIDHandler(repo, fixedClock(now)).Handle(ctx, GetTaskByIDQuery{ID: task.ID()})
			require.NoError(t, err)
			require.NotNil(t, dto)
			assert.Equal(t, task.ID(), dto.ID)
			assert.Equal(t, tt.status, dto.Status)
			assert.Equal(t, tt.wantOverdue, dto.IsOverdue)
		})
	}

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockTaskRepository)
		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, errors.New("db down"))

		_, err := NewGetTaskByIDHandler(repo, nil).Handle(ctx, GetTaskByIDQuery{ID: id})
		var svcErr *TaskServiceError
		assert.ErrorAs(t, err, &svcErr)
	})
}

func TestGetTasksHandler(t *testing.T) {
	ctx := context.Background()
	a := existingTask(t)
	b := existingTask(t)

	t.Run("all tasks", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("GetAll", ctx).Return([]*domain.Task{a, b}, nil)

		dtos, err := NewGetTasksHandler(repo).Handle(ctx, GetTasksQuery{})
		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, a.ID(), dtos[0].ID)
		assert.Equal(t, b.ID(), dtos[1].ID)
		repo.AssertNotCalled(t, "GetByStatus", ctx, domain.TaskStatusPending)
	})

	t.Run("filtered by status", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("GetByStatus", ctx, domain.TaskStatusPending).Return([]*domain.Task{a}, nil)

		dtos, err := NewGetTasksHandler(repo).Handle(ctx, GetTasksQuery{Status: statusPtr(domain.TaskStatusPending)})
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, a.ID(), dtos[0].ID)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("GetAll", ctx).Return([]*domain.Task{}, nil)

		dtos, err := NewGetTasksHandler(repo).Handle(ctx, GetTasksQuery{})
		require.NoError(t, err)
		assert.NotNil(t, dtos)
		assert.Empty(t, dtos)
	})
}

func TestGetOverdueTasksHandler(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	late := taskWithDueDate(t, "late", now.Add(-time.Hour), domain.TaskStatusPending)

	repo := new(MockTaskRepository)
	repo.On("GetOverdue", ctx, now).Return([]*domain.Task{late}, nil)

	dtos, err := NewGetOverdueTasksHandler(repo, fixedClock(now)).Handle(ctx, GetOverdueTasksQuery{})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, late.ID(), dtos[0].ID)
	assert.True(t, dtos[0].IsOverdue)
	repo.AssertExpectations(t)
}

func TestGetTaskStatsHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("counts every status", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("CountByStatus", ctx, domain.TaskStatusPending).Return(4, nil)
		repo.On("CountByStatus", ctx, domain.TaskStatusInProgress).Return(2, nil)
		repo.On("CountByStatus", ctx, domain.TaskStatusCompleted).Return(7, nil)
		repo.On("CountByStatus", ctx, domain.TaskStatusCancelled).Return(1, nil)

		stats, err := NewGetTaskStatsHandler(repo, nil).Handle(ctx, GetTaskStatsQuery{})
		require.NoError(t, err)
		assert.Equal(t, TaskStatsDTO{Pending: 4, InProgress: 2, Completed: 7, Cancelled: 1, Total: 14}, stats)
	})

	t.Run("count failure", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("CountByStatus", ctx, domain.TaskStatusPending).Return(0, errors.New("boom"))

		stats, err := NewGetTaskStatsHandler(repo, nil).Handle(ctx, GetTaskStatsQuery{})
		assert.Error(t, err)
		assert.Equal(t, TaskStatsDTO{}, stats)
	})
}
