package migrations

import "embed"

// Migrations holds the forward migrations applied at startup.
//
//go:embed *.sql
var Migrations embed.FS
