// Package service contains the application-specific use cases for tasks.
//
// It is organized as a small command/query layer. Commands (create, update,
// complete) load a domain.Task, mutate it only through its methods and persist
// it through a TaskRepository. Queries project tasks into read-only DTOs and
// compute derived values such as the overdue flag at read time.
//
// Key components:
//
// 1. Handlers:
//   - One handler type per command or query, each holding only its injected
//     repository (and clock for queries)
//   - TaskHandlers wires every handler once at startup; there is no runtime
//     lookup by request type
//
// 2. Validation:
//   - CommandValidator checks command fields before a handler runs and
//     reports every failing field in a ValidationError
//
// 3. Persistence and events:
//   - TaskRepositoryAdapter wraps a store.TaskStore and dispatches the
//     task's pending domain events after each successful write
//
// 4. Error Handling:
//   - Handlers signal ErrTaskNotFound, ErrInvalidOperation, ErrValidation or
//     the domain's ErrInvalidArgument; everything else is wrapped in a
//     TaskServiceError
package service
