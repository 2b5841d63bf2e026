package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownEvent is returned when an event variant has no entry in the table.
var ErrUnknownEvent = errors.New("unknown domain event")

// Table maps each event variant to the handlers that receive it.
type Table struct {
	Created   []Handler[domain.TaskCreatedEvent]
	Updated   []Handler[domain.TaskUpdatedEvent]
	Completed []Handler[domain.TaskCompletedEvent]
}

// Subscribe registers h for every event variant.
func (t *Table) Subscribe(h EventHandler) {
	t.Created = append(t.Created, catchAll[domain.TaskCreatedEvent](h))
	t.Updated = append(t.Updated, catchAll[domain.TaskUpdatedEvent](h))
	t.Completed = append(t.Completed, catchAll[domain.TaskCompletedEvent](h))
}

func catchAll[E domain.DomainEvent](h EventHandler) Handler[E] {
	return HandlerFunc[E](func(ctx context.Context, event E) error {
		return h.HandleEvent(ctx, event)
	})
}

// Dispatcher delivers domain events to the handlers listed in its Table.
// The table is copied at construction and never changes afterwards, so a
// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	table  Table
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher from a copy of table.
func NewDispatcher(table Table, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		table: Table{
			Created:   append([]Handler[domain.TaskCreatedEvent](nil), table.Created...),
			Updated:   append([]Handler[domain.TaskUpdatedEvent](nil), table.Updated...),
			Completed: append([]Handler[domain.TaskCompletedEvent](nil), table.Completed...),
		},
		logger: logger.With("component", "event_dispatcher"),
	}
}

// Dispatch runs every handler registered for the event's variant
// concurrently and waits for all of them. If any handler fails, the others
// still run to completion and the first error is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.DomainEvent) error {
	switch e := event.(type) {
	case domain.TaskCreatedEvent:
		return fanOut(ctx, d.logger, d.table.Created, e)
	case domain.TaskUpdatedEvent:
		return fanOut(ctx, d.logger, d.table.Updated, e)
	case domain.TaskCompletedEvent:
		return fanOut(ctx, d.logger, d.table.Completed, e)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, event)
	}
}

func fanOut[E domain.DomainEvent](ctx context.Context, logger *slog.Logger, handlers []Handler[E], event E) error {
	logger.Debug("dispatching event",
		"event_id", event.EventID(),
		"event_type", event.Kind(),
		"handler_count", len(handlers))

	if len(handlers) == 0 {
		return nil
	}

	var g errgroup.Group
	for i, handler := range handlers {
		i, handler := i, handler
		g.Go(func() error {
			if err := handler.Handle(ctx, event); err != nil {
				logger.Error("handler failed to process event",
					"error", err,
					"handler_index", i,
					"event_id", event.EventID(),
					"event_type", event.Kind())
				return err
			}
			return nil
		})
	}

	return g.Wait()
}
