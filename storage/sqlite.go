package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raulfrk/Dietor/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates (or opens) one user's ledger database and brings its schema
// up to date. The returned handle is safe for concurrent use.
func Open(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	// One connection per store: each user's ledger is single-writer and a
	// lone connection keeps SQLite transactions strictly serialized.
	sqlDB.SetMaxOpenConns(1)

	// FK enforcement is off by default in SQLite; cascade deletes depend on it.
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA busy_timeout = 5000;")

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Cycle{},
		&models.FoodEntry{},
		&models.ExerciseEntry{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// At most one row may have end_dt IS NULL: the open-cycle invariant lives
	// in the schema so concurrent opens race on the index, not on app code.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_cycle_one_open ON cycles ((end_dt IS NULL)) WHERE end_dt IS NULL`,
	).Error; err != nil {
		return fmt.Errorf("create open-cycle index: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err came from a unique index breach.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsCheckViolation reports whether err came from a row-level CHECK constraint.
func IsCheckViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "CHECK constraint failed")
}
