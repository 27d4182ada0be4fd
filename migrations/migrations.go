package migrations

import "embed"

// Files Встроенные файлы миграций для golang-migrate.
//
//go:embed *.sql
var Files embed.FS
