// Package sqlite implements store.TaskStore on an embedded SQLite database
// through gorm. It backs the server when database.driver is "sqlite" and
// gives tests a real store without an external database.
package sqlite
