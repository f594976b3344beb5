// Package migrations exposes the embedded goose migrations of the metadata
// schema.
package migrations

import "embed"

// Files holds every migration, at the root of the FS.
//
//go:embed *.sql
var Files embed.FS
