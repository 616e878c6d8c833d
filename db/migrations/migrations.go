// Package migrations embeds the SQL schema so every binary and test applies
// the same files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
