// Package migrations embeds the goose SQL migrations so the server binary can
// bring its schema up to date without the source tree.
package migrations

import "embed"

// FS holds every migration file
//
//go:embed *.sql
var FS embed.FS
