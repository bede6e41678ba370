// Package migrations contiene el esquema SQL versionado, embebido en el binario.
package migrations

import "embed"

// FS archivos NNNNNN_nombre.{up,down}.sql en el formato de golang-migrate.
//
//go:embed *.sql
var FS embed.FS
