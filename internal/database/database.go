package database

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase opens the inventory store and brings its schema up to date.
// driver selects the dialect: "sqlite" with a file dsn for the embedded
// default, or "postgres" with a full dsn.
func NewDatabase(parent context.Context, logger *zap.SugaredLogger, driver string, dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         NewLogger(logger),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	var db *gorm.DB
	connectDb := func() error {
		var err error
		db, err = gorm.Open(dialector, config)
		if err != nil {
			return err
		}
		return nil
	}
	err := backoff.Retry(connectDb, backoff.WithContext(backoff.NewExponentialBackOff(), parent))
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// sqlite leaves foreign keys off unless asked
		if res := db.Exec("PRAGMA foreign_keys = ON"); res.Error != nil {
			return nil, res.Error
		}
	}

	if err := Migrations().Migrate(parent, db); err != nil {
		return nil, err
	}
	return db, nil
}
