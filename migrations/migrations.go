// Package migrations embeds the schema the sync job writes into. The job itself
// never applies it; it is provisioned out of band and used by test harnesses.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
