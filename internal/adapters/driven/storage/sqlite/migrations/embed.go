// Package migrations holds the player cache schema as numbered SQL files.
// Files named NNN_name.up.sql are applied in order; .down.sql files are kept
// for manual rollback and never run by the store.
package migrations

import "embed"

// FS is the embedded migration directory.
//
//go:embed *.sql
var FS embed.FS
