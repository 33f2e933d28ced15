package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/switchyard-io/switchyard/internal/database/migration_20250612_0000"
	"github.com/switchyard-io/switchyard/internal/database/migrations"
)

// Migrations returns the ordered schema history of the inventory store.
func Migrations() *migrations.Migrations {
	return &migrations.Migrations{
		GormOptions: &gormigrate.Options{
			TableName:      "apiserver_migrations",
			IDColumnName:   "id",
			IDColumnSize:   40,
			UseTransaction: false,
		},
		Migrations: []*gormigrate.Migration{
			migration_20250612_0000.Migrate(),
		},
	}
}
