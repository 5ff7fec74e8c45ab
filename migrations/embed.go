// Package migrations holds the archive schema migrations, embedded so the
// binary can apply them at startup without external files.
package migrations

import "embed"

// FS exposes the migration SQL files to the golang-migrate iofs source.
//
//go:embed *.sql
var FS embed.FS
