// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The Task aggregate is the only entity. It guards its own invariants and is
// the sole producer of domain events, which stay queued on the instance until
// the persistence layer has saved the task and handed them to a dispatcher.
package domain
