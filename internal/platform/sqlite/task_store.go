package sqlite

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
	"gorm.io/gorm"
)

// taskRecord is the gorm model for the tasks table.
type taskRecord struct {
	ID          string     `gorm:"primaryKey;size:36"`
	Title       string     `gorm:"size:200;not null"`
	Description string     `gorm:"size:1000;not null;default:''"`
	Status      string     `gorm:"size:20;not null;index"`
	DueDate     *time.Time `gorm:"index"`
	Priority    int        `gorm:"not null;index"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime:false;index"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for taskRecord.
func (taskRecord) TableName() string {
	return "tasks"
}

func newTaskRecord(t *domain.Task) taskRecord {
	s := t.State()
	return taskRecord{
		ID:          s.ID.String(),
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status.String(),
		DueDate:     utcPtr(s.DueDate),
		Priority:    s.Priority,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   utcPtr(s.UpdatedAt),
	}
}

func (r taskRecord) toDomain() (*domain.Task, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseTaskStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return domain.RestoreTask(domain.TaskState{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
		DueDate:     utcPtr(r.DueDate),
		Priority:    r.Priority,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   utcPtr(r.UpdatedAt),
	}), nil
}

// TaskStore implements store.TaskStore on SQLite through gorm.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStore creates a new SQLite implementation of store.TaskStore.
func NewTaskStore(db *gorm.DB, log *slog.Logger) *TaskStore {
	if log == nil {
		log = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store_sqlite")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec := newTaskRecord(task)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		log.Error("failed to insert task", slog.String("error", err.Error()), slog.String("task_id", rec.ID))
		return mapError("create", err)
	}

	log.Debug("task created", slog.String("task_id", rec.ID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var rec taskRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id.String()).Error; err != nil {
		return nil, mapError("get", err)
	}
	return s.toTask(rec)
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec := newTaskRecord(task)
	result := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ?", rec.ID).
		Select("title", "description", "status", "due_date", "priority", "updated_at").
		Updates(&rec)
	if result.Error != nil {
		log.Error("failed to update task", slog.String("error", result.Error.Error()), slog.String("task_id", rec.ID))
		return mapError("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task updated", slog.String("task_id", rec.ID))
	return nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.find(ctx, s.db.WithContext(ctx).Order("created_at DESC"))
}

// ListByStatus implements store.TaskStore.ListByStatus
func (s *TaskStore) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return s.find(ctx, s.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("created_at DESC"))
}

// ListOverdue implements store.TaskStore.ListOverdue
func (s *TaskStore) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	return s.find(ctx, s.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?",
			now.UTC(), domain.TaskStatusCompleted.String()).
		Order("due_date ASC"))
}

// CountByStatus implements store.TaskStore.CountByStatus
func (s *TaskStore) CountByStatus(ctx context.Context, status domain.TaskStatus) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("status = ?", status.String()).
		Count(&n).Error
	if err != nil {
		return 0, mapError("count", err)
	}
	return int(n), nil
}

func (s *TaskStore) find(ctx context.Context, query *gorm.DB) ([]*domain.Task, error) {
	var recs []taskRecord
	if err := query.Find(&recs).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, mapError("list", err)
	}

	tasks := make([]*domain.Task, 0, len(recs))
	for _, rec := range recs {
		task, err := s.toTask(rec)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *TaskStore) toTask(rec taskRecord) (*domain.Task, error) {
	task, err := rec.toDomain()
	if err != nil {
		return nil, store.NewStoreError("task", "scan", "stored task is malformed", err)
	}
	return task, nil
}

// mapError translates gorm errors into store errors.
func mapError(operation string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrTaskNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.NewStoreError("task", operation, "task already exists", store.ErrDuplicate)
	default:
		return store.NewStoreError("task", operation, "database error", err)
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
