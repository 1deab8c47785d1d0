// Package state persists play history and the saved volume in a local
// SQLite database.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "pixelpop"
	dbFileName = "pixelpop.db"
)

type Manager struct {
	db       *sql.DB
	maxPlays int
}

// Open opens the database in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	return OpenPath(dbPath)
}

// OpenPath opens the database at path. ":memory:" is accepted.
func OpenPath(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db, maxPlays: MaxPlays}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}
