// Package migrations embeds the ledger schema for the postgres store and its tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
