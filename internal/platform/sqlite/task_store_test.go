package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/sqlite"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore opens an in-memory database for one test.
func setupTestStore(t *testing.T) *sqlite.TaskStore {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	return sqlite.NewTaskStore(db, nil)
}

func mustTask(t *testing.T, title string, due *time.Time, priority int) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, title+" description", due, priority)
	require.NoError(t, err)
	return task
}

func restoreWithCreatedAt(t *testing.T, task *domain.Task, createdAt time.Time) *domain.Task {
	t.Helper()
	s := task.State()
	s.CreatedAt = createdAt
	return domain.RestoreTask(s)
}

func TestTaskStore_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	due := time.Date(2030, 5, 1, 9, 30, 0, 0, time.UTC)
	task := mustTask(t, "Write report", &due, 4)
	require.NoError(t, s.Create(ctx, task))

	got, err := s.GetByID(ctx, task.ID())
	require.NoError(t, err)

	assert.Equal(t, task.ID(), got.ID())
	assert.Equal(t, "Write report", got.Title())
	assert.Equal(t, "Write report description", got.Description())
	assert.Equal(t, domain.TaskStatusPending, got.Status())
	assert.Equal(t, 4, got.Priority())
	require.NotNil(t, got.DueDate())
	assert.True(t, due.Equal(*got.DueDate()))
	assert.True(t, task.CreatedAt().Equal(got.CreatedAt()))
	assert.Nil(t, got.UpdatedAt())
	assert.Empty(t, got.DomainEvents(), "restored tasks carry no events")
}

func TestTaskStore_CreateDuplicate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	task := mustTask(t, "Once", nil, 1)
	require.NoError(t, s.Create(ctx, task))

	err := s.Create(ctx, task)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestTaskStore_GetByIDNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestTaskStore_Update(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	due := time.Now().Add(48 * time.Hour).UTC()
	task := mustTask(t, "Draft", &due, 2)
	require.NoError(t, s.Create(ctx, task))

	require.NoError(t, task.UpdateDetails("Final", "", nil, 5))
	task.MarkAsInProgress()
	require.NoError(t, s.Update(ctx, task))

	got, err := s.GetByID(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title())
	assert.Equal(t, "", got.Description())
	assert.Nil(t, got.DueDate(), "clearing the due date must be persisted")
	assert.Equal(t, 5, got.Priority())
	assert.Equal(t, domain.TaskStatusInProgress, got.Status())
	require.NotNil(t, got.UpdatedAt())
	assert.True(t, task.CreatedAt().Equal(got.CreatedAt()), "created_at never changes")
}

func TestTaskStore_UpdateNotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.Update(context.Background(), mustTask(t, "Ghost", nil, 1))
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_ListOrdering(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	oldest := restoreWithCreatedAt(t, mustTask(t, "oldest", nil, 1), base)
	middle := restoreWithCreatedAt(t, mustTask(t, "middle", nil, 1), base.Add(time.Hour))
	newest := restoreWithCreatedAt(t, mustTask(t, "newest", nil, 1), base.Add(2*time.Hour))

	for _, task := range []*domain.Task{middle, oldest, newest} {
		require.NoError(t, s.Create(ctx, task))
	}

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "newest", tasks[0].Title())
	assert.Equal(t, "middle", tasks[1].Title())
	assert.Equal(t, "oldest", tasks[2].Title())
}

func TestTaskStore_ListEmpty(t *testing.T) {
	s := setupTestStore(t)

	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskStore_ListByStatusAndCount(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	pending := mustTask(t, "pending", nil, 1)
	done := mustTask(t, "done", nil, 1)
	done.MarkAsCompleted()
	cancelled := mustTask(t, "cancelled", nil, 1)
	cancelled.Cancel()

	for _, task := range []*domain.Task{pending, done, cancelled} {
		require.NoError(t, s.Create(ctx, task))
	}

	completed, err := s.ListByStatus(ctx, domain.TaskStatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID(), completed[0].ID())

	inProgress, err := s.ListByStatus(ctx, domain.TaskStatusInProgress)
	require.NoError(t, err)
	assert.Empty(t, inProgress)

	counts := map[domain.TaskStatus]int{
		domain.TaskStatusPending:    1,
		domain.TaskStatusInProgress: 0,
		domain.TaskStatusCompleted:  1,
		domain.TaskStatusCancelled:  1,
	}
	for status, want := range counts {
		got, err := s.CountByStatus(ctx, status)
		require.NoError(t, err)
		assert.Equal(t, want, got, "count for %s", status)
	}
}

func TestTaskStore_ListOverdue(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	twoDaysAgo := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	lateA := mustTask(t, "late-a", &yesterday, 1)
	lateB := mustTask(t, "late-b", &twoDaysAgo, 1)
	lateCancelled := mustTask(t, "late-cancelled", &yesterday, 1)
	lateCancelled.Cancel()
	lateDone := mustTask(t, "late-done", &yesterday, 1)
	lateDone.MarkAsCompleted()
	future := mustTask(t, "future", &tomorrow, 1)
	undated := mustTask(t, "undated", nil, 1)

	for _, task := range []*domain.Task{lateA, lateB, lateCancelled, lateDone, future, undated} {
		require.NoError(t, s.Create(ctx, task))
	}

	overdue, err := s.ListOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, overdue, 3)
	assert.Equal(t, "late-b", overdue[0].Title(), "earliest due date first")

	titles := []string{overdue[1].Title(), overdue[2].Title()}
	assert.ElementsMatch(t, []string{"late-a", "late-cancelled"}, titles)
}
