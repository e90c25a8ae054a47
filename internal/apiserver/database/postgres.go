package database

import (
	"github.com/amoylab/rentboard/internal/common/config"

	"gorm.io/driver/postgres"
)

// Postgres implements the Database interface using PostgreSQL
type Postgres struct {
	*gormStore
	cfg *config.DatabaseConfig
}

// NewPostgres creates a new Postgres instance
func NewPostgres(cfg *config.DatabaseConfig) (Database, error) {
	store, err := openGorm(postgres.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}
	return &Postgres{gormStore: store, cfg: cfg}, nil
}
