// Package migrations embeds the SQL schema files so the server binary can
// bootstrap its database standalone.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
