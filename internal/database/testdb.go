package database

import (
	"context"
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDatabaseCounter uint64

// NewTestDatabase opens a fresh in-memory store with the full schema
// applied, so each test suite gets an isolated database.
func NewTestDatabase() (*gorm.DB, error) {
	n := atomic.AddUint64(&testDatabaseCounter, 1)
	dsn := fmt.Sprintf("file:switchyard_test_%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if res := db.Exec("PRAGMA foreign_keys = ON"); res.Error != nil {
		return nil, res.Error
	}
	if err := Migrations().Migrate(context.Background(), db); err != nil {
		return nil, err
	}
	return db, nil
}
