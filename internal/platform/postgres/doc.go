// Package postgres implements store.TaskStore on PostgreSQL.
//
// Queries run through database/sql with the pgx stdlib driver, so a store
// works with either a *sql.DB or a *sql.Tx (store.DBTX). Driver errors are
// translated into store errors by MapError. The schema lives in the embedded
// migrations directory and is applied with goose.
package postgres
