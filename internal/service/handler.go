package service

import (
	"context"
	"time"
)

// CommandHandler handles a command that returns nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// CommandResultHandler handles a command that returns a result, such as the
// identifier of a created task.
type CommandResultHandler[C any, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// QueryHandler handles a read-only query.
type QueryHandler[Q any, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Clock returns the current time. Query handlers and the validator take one
// so tests can pin "now".
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
