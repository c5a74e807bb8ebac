package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// Manager hands out one database handle per user. Every user owns an
// independent SQLite file under the data directory; handles are opened
// lazily and reused.
type Manager struct {
	dir string

	mu  sync.Mutex
	dbs map[string]*gorm.DB
}

func NewManager(dir string) *Manager {
	return &Manager{dir: dir, dbs: make(map[string]*gorm.DB)}
}

// ForUser returns the handle for userID's store, opening it on first use.
func (m *Manager) ForUser(userID string) (*gorm.DB, error) {
	if userID == "" || strings.ContainsAny(userID, `/\.`) {
		return nil, fmt.Errorf("invalid user id %q", userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if db, ok := m.dbs[userID]; ok {
		return db, nil
	}
	db, err := Open(m.Path(userID))
	if err != nil {
		return nil, fmt.Errorf("open store for user %s: %w", userID, err)
	}
	m.dbs[userID] = db
	return db, nil
}

// Path returns the SQLite file backing userID's store.
func (m *Manager) Path(userID string) string {
	return filepath.Join(m.dir, userID+".sqlite")
}
