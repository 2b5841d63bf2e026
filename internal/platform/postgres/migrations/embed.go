// Package migrations embeds the SQL migrations for the tasks schema.
package migrations

import "embed"

// FS holds every goose migration file in this directory.
//
//go:embed *.sql
var FS embed.FS
