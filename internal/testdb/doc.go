// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests that need a real database call GetTestDBWithT, which skips the test
// unless DATABASE_URL is set, applies the embedded goose migrations once per
// connection and registers cleanup. WithTx runs a test body inside a
// transaction that is always rolled back, so tests can share one database and
// run in parallel without seeing each other's rows.
package testdb
