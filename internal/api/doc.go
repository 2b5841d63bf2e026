// Package api exposes the task handlers over HTTP. It decodes requests,
// runs command validation, calls the service handlers and maps their errors
// to sanitized JSON responses.
package api
