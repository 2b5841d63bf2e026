// Package store defines TaskStore, the persistence contract for tasks, and
// the errors every implementation returns. Stores save and rebuild task
// state only; pending domain events are the repository's concern.
//
// Implementations live under internal/platform (postgres, sqlite).
package store
