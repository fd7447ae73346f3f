// Package migrations embeds the SQL migration files applied at startup.
package migrations

import "embed"

// FS holds the embedded migration files. Only *.up.sql files are applied,
// in lexical order.
//
//go:embed *.sql
var FS embed.FS
