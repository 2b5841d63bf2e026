// Package config loads server settings from config.yaml, a local .env file
// and TASKS_-prefixed environment variables, then validates them before the
// server starts. Redis publishing and the websocket event stream are both
// switched on here.
package config
