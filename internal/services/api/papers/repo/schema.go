package repo

import _ "embed"

// SchemaDDL is the full schema, used by integration tests and the grant CLI
// bootstrap
//
//go:embed schema.sql
var SchemaDDL string
