package migrations

import "embed"

// FS contains embedded SQLite migrations for order storage.
//
//go:embed *.sql
var FS embed.FS
