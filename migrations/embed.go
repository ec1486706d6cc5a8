// Package migrations embeds the SQL schema migrations for the user service.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
