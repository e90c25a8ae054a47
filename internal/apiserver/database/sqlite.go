package database

import (
	"fmt"

	"github.com/amoylab/rentboard/internal/common/config"

	"github.com/glebarez/sqlite"
)

// SQLite implements the Database interface using SQLite
type SQLite struct {
	*gormStore
	cfg *config.DatabaseConfig
}

// NewSQLite creates a new SQLite instance
func NewSQLite(cfg *config.DatabaseConfig) (Database, error) {
	store, err := openGorm(sqlite.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}

	// a single connection serializes writers and keeps ":memory:" databases
	// from splitting into one database per connection
	sqlDB, err := store.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &SQLite{gormStore: store, cfg: cfg}, nil
}
