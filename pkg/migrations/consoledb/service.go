// Package consoledb registers the schema migrations of the console database.
package consoledb

import "github.com/uptrace/bun/migrate"

// Migrations holds every console database migration, registered from init functions.
var Migrations = migrate.NewMigrations()
