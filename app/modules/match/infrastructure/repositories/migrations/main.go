package matchmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the match schema history, registered by the files in this package.
var Migrations = migrate.NewMigrations()
