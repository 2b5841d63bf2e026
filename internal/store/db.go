package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql that SQL-backed task stores need.
// Both *sql.DB and *sql.Tx satisfy it, so integration tests can run a store
// inside a transaction that is rolled back afterwards.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
