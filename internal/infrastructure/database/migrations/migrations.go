// Package migrations はPostgreSQL用のスキーママイグレーションを埋め込みます
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
