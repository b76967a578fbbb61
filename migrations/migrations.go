// Package migrations встраивает SQL-схему хранилища postgres в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
