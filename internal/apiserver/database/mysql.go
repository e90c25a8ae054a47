package database

import (
	"github.com/amoylab/rentboard/internal/common/config"

	"gorm.io/driver/mysql"
)

// MySQL implements the Database interface using MySQL
type MySQL struct {
	*gormStore
	cfg *config.DatabaseConfig
}

// NewMySQL creates a new MySQL instance
func NewMySQL(cfg *config.DatabaseConfig) (Database, error) {
	store, err := openGorm(mysql.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}
	return &MySQL{gormStore: store, cfg: cfg}, nil
}
