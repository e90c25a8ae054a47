package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_GetDSN_Postgres(t *testing.T) {
	c := &DatabaseConfig{Type: "postgres", Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", c.GetDSN())
}

func TestDatabaseConfig_GetDSN_MySQL(t *testing.T) {
	c := &DatabaseConfig{Type: "mysql", Host: "h", Port: 3306, User: "u", Password: "p", DBName: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local", c.GetDSN())
}

func TestDatabaseConfig_GetDSN_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "app.sqlite")
	c := &DatabaseConfig{Type: "sqlite", DBName: dbPath}
	assert.Equal(t, dbPath, c.GetDSN())
	_, err := os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)

	mem := &DatabaseConfig{Type: "sqlite", DBName: ":memory:"}
	assert.Equal(t, ":memory:", mem.GetDSN())
}

func TestDatabaseConfig_GetDSN_Mongo(t *testing.T) {
	c := &DatabaseConfig{Type: "mongo", URI: "mongodb://localhost:27017"}
	assert.Equal(t, "mongodb://localhost:27017", c.GetDSN())
}

func TestDatabaseConfig_GetDSN_Unknown(t *testing.T) {
	c := &DatabaseConfig{Type: "unknown"}
	assert.Equal(t, "", c.GetDSN())
}

func TestAPIServerConfig_Validate(t *testing.T) {
	valid := func() *APIServerConfig {
		c := &APIServerConfig{JWT: JWTConfig{SecretKey: testSecret}}
		c.SetDefaults()
		return c
	}

	assert.NoError(t, valid().Validate())

	c := valid()
	c.Database.Type = "oracle"
	assert.ErrorContains(t, c.Validate(), "unsupported database type")

	c = valid()
	c.Database.Type = "mongo"
	assert.ErrorContains(t, c.Validate(), "database.uri")

	c = valid()
	c.Upload.Type = "s3"
	assert.ErrorContains(t, c.Validate(), "upload.s3.bucket")

	c = valid()
	c.Cache.Enabled = true
	assert.ErrorContains(t, c.Validate(), "cache.redis.addr")
}
