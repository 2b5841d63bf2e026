// Package realtime streams task domain events to browsers over WebSockets.
//
// The Hub is subscribed to the event dispatcher like any other handler.
// Each connected browser gets its own buffered send queue drained by a write
// pump; a client whose queue is full is disconnected rather than allowed to
// stall dispatch for everyone else.
package realtime
