// Package migrations embeds the SQL migration files so the server binary
// carries its own schema and needs no migrations directory on disk.
package migrations

import "embed"

// FS holds the embedded goose migration files.
//
//go:embed *.sql
var FS embed.FS
