// Package migrations embeds the PostgreSQL schema migrations.
//
// Files are named NNNN_description.sql; the matching rollback is
// NNNN_description_rollback.sql.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
