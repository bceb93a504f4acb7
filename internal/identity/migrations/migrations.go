// Package migrations embeds the goose SQL migrations defining the identity
// schema. The database, not the application, enforces uniqueness and
// referential integrity, so every constraint here is named explicitly —
// repositories map violations back to errors by constraint name.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
