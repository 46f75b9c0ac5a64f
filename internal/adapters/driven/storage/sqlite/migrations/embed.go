// Package migrations holds the RFQ store schema as numbered
// <version>_<name>.{up,down}.sql files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
