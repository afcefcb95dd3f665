package storage

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"quejas/backend/internal/config"
	"quejas/backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the configured database, runs migrations and applies the
// connection-level timeouts. A Postgres DSN takes precedence; without one
// the service runs on a local sqlite file, the way the original deployment
// did for small installs.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	} else {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, mkErr
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)

	if db.Dialector.Name() == "sqlite" {
		// Match the original's pragmas: WAL for concurrent readers,
		// foreign keys on so the cascade constraint actually fires.
		db.Exec("PRAGMA journal_mode = WAL")
		db.Exec("PRAGMA foreign_keys = ON")
	}

	if err := db.AutoMigrate(&models.Entity{}, &models.Complaint{}); err != nil {
		log.Printf("ERROR: Failed to run migrations: %v", err)
		return nil, err
	}

	return db, nil
}
