// Package migrations embeds the versioned schema for each supported storage backend.
package migrations

import "embed"

// FS holds one directory of golang-migrate files per backend, named after the backend.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
