// Package events delivers domain events to the components that react to them.
//
// The Dispatcher is built once at startup from a Table that maps each event
// variant to a fixed list of handlers. Dispatching an event type-switches on
// the variant, runs that variant's handlers concurrently and waits for all of
// them before returning. There is no runtime handler discovery.
//
// The primary components are:
// - Table: the static variant-to-handlers mapping
// - Dispatcher: runs the handlers for one event
// - EventHandler: a catch-all subscriber registered on every variant via Subscribe
// - Envelope: the JSON shape used when events leave the process
package events
