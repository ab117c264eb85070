package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// maxOpenConns bounds concurrent database access; callers beyond the bound
// queue for a connection rather than failing.
const maxOpenConns = 5

// Database owns the single SQLite file backing favorites and settings.
type Database struct {
	db *gorm.DB
}

// Open connects to the database file at path, creating the file and its
// parent directories as needed.
func Open(path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	return &Database{db: db}, nil
}

func (d *Database) Favorites() *FavoritesStore {
	return &FavoritesStore{db: d.db}
}

func (d *Database) Settings() *SettingsStore {
	return &SettingsStore{db: d.db}
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
