// Package migrations esquema SQL versionado, embebido en los binarios.
package migrations

import "embed"

// FS archivos NNNNNN_nombre.{up,down}.sql para golang-migrate.
//
//go:embed *.sql
var FS embed.FS
