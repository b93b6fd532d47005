// Package migrations embeds the goose migrations for the local database
// holding the sealed session and user preferences.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
