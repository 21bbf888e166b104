// Package migrations embeds the goose SQL migrations so the server binary,
// cmd/migrate and integration tests all apply the same schema.
package migrations

import "embed"

// FS holds every *.sql migration at its root.
//
//go:embed *.sql
var FS embed.FS
