// Package logger sets up the JSON slog logger used across the server.
//
// Request handlers attach a logger carrying the request's trace ID to the
// context; handlers, the event dispatcher and the stores pick it up with
// FromContext or FromContextOrDefault.
package logger
