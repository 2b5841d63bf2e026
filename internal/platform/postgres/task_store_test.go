package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/phrazzld/task-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(t *testing.T, title string, due *time.Time) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, "description of "+title, due, 3)
	require.NoError(t, err)
	return task
}

func TestPostgresTaskStore_CRUD(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresTaskStore(tx, nil)

		due := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Microsecond)
		task := newTask(t, "Integration", &due)
		require.NoError(t, s.Create(ctx, task))

		got, err := s.GetByID(ctx, task.ID())
		require.NoError(t, err)
		assert.Equal(t, task.Title(), got.Title())
		assert.Equal(t, domain.TaskStatusPending, got.Status())
		require.NotNil(t, got.DueDate())
		assert.True(t, due.Equal(*got.DueDate()))
		assert.Nil(t, got.UpdatedAt())

		require.NoError(t, got.UpdateDetails("Integration v2", "", nil, 1))
		got.MarkAsCompleted()
		require.NoError(t, s.Update(ctx, got))

		reloaded, err := s.GetByID(ctx, task.ID())
		require.NoError(t, err)
		assert.Equal(t, "Integration v2", reloaded.Title())
		assert.Nil(t, reloaded.DueDate())
		assert.Equal(t, 1, reloaded.Priority())
		assert.Equal(t, domain.TaskStatusCompleted, reloaded.Status())
		assert.NotNil(t, reloaded.UpdatedAt())
	})
}

func TestPostgresTaskStore_NotFoundAndDuplicate(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresTaskStore(tx, nil)

		_, err := s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		err = s.Update(ctx, newTask(t, "ghost", nil))
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresTaskStore(tx, nil)

		task := newTask(t, "twice", nil)
		require.NoError(t, s.Create(ctx, task))
		assert.ErrorIs(t, s.Create(ctx, task), store.ErrDuplicate)
	})
}

func TestPostgresTaskStore_Queries(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresTaskStore(tx, nil)

		now := time.Now().UTC()
		yesterday := now.Add(-24 * time.Hour)
		lastWeek := now.Add(-7 * 24 * time.Hour)

		late := newTask(t, "late", &yesterday)
		later := newTask(t, "very late", &lastWeek)
		done := newTask(t, "done", &yesterday)
		done.MarkAsCompleted()
		open := newTask(t, "open", nil)

		for _, task := range []*domain.Task{late, later, done, open} {
			require.NoError(t, s.Create(ctx, task))
		}

		overdue, err := s.ListOverdue(ctx, now)
		require.NoError(t, err)
		ids := make([]uuid.UUID, 0, len(overdue))
		for _, task := range overdue {
			ids = append(ids, task.ID())
		}
		assert.Contains(t, ids, late.ID())
		assert.Contains(t, ids, later.ID())
		assert.NotContains(t, ids, done.ID())
		assert.NotContains(t, ids, open.ID())

		completed, err := s.ListByStatus(ctx, domain.TaskStatusCompleted)
		require.NoError(t, err)
		require.NotEmpty(t, completed)
		for _, task := range completed {
			assert.Equal(t, domain.TaskStatusCompleted, task.Status())
		}

		pending, err := s.CountByStatus(ctx, domain.TaskStatusPending)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pending, 3)

		all, err := s.List(ctx)
		require.NoError(t, err)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].CreatedAt().After(all[i-1].CreatedAt()), "list is newest first")
		}
	})
}
