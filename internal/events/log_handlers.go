package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
)

// LogHandlers returns a Table whose handlers record each event at Info level.
func LogHandlers(logger *slog.Logger) Table {
	log := logger.With("component", "task_event_log")

	return Table{
		Created: []Handler[domain.TaskCreatedEvent]{
			HandlerFunc[domain.TaskCreatedEvent](func(ctx context.Context, e domain.TaskCreatedEvent) error {
				log.InfoContext(ctx, "task created",
					"task_id", e.TaskID,
					"title", e.Title)
				return nil
			}),
		},
		Updated: []Handler[domain.TaskUpdatedEvent]{
			HandlerFunc[domain.TaskUpdatedEvent](func(ctx context.Context, e domain.TaskUpdatedEvent) error {
				log.InfoContext(ctx, "task updated",
					"task_id", e.TaskID,
					"title", e.Title)
				return nil
			}),
		},
		Completed: []Handler[domain.TaskCompletedEvent]{
			HandlerFunc[domain.TaskCompletedEvent](func(ctx context.Context, e domain.TaskCompletedEvent) error {
				log.InfoContext(ctx, "task completed",
					"task_id", e.TaskID,
					"title", e.Title,
					"completed_at", e.CompletedAt)
				return nil
			}),
		},
	}
}

// Merge appends the handlers of other to t.
func (t *Table) Merge(other Table) {
	t.Created = append(t.Created, other.Created...)
	t.Updated = append(t.Updated, other.Updated...)
	t.Completed = append(t.Completed, other.Completed...)
}
