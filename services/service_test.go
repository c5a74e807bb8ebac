package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/raulfrk/Dietor/storage"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "ledger.sqlite"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	return db
}

// openCycle opens a cycle or fails the test.
func openCycle(t *testing.T, db *gorm.DB, maintenance, goal int, start time.Time) uint {
	t.Helper()
	cycle, err := NewCycleService(db).OpenCycle(maintenance, goal, start)
	if err != nil {
		t.Fatalf("open cycle: %v", err)
	}
	return cycle.ID
}
