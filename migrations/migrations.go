// Package migrations embeds the SQL schema so integration tests can apply it
// to throwaway databases.
package migrations

import _ "embed"

//go:embed 001_init.sql
var Schema string
