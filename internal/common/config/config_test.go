package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-very-long-secret-key-for-testing"

func TestResolveEnv(t *testing.T) {
	t.Setenv("X_A", "va")
	in := []byte("a: ${X_A:da}\nb: ${X_B:db}\nc: ${RB_UNSET_KEY}\n")
	out := resolveEnv(in)
	assert.Contains(t, string(out), "a: va")
	assert.Contains(t, string(out), "b: db")
	assert.Contains(t, string(out), "c: \n")
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	require.NoError(t, os.Chdir(tmp))
	return tmp
}

func TestLoadConfig_APIServer(t *testing.T) {
	tmp := chdirTemp(t)
	t.Setenv("RB_JWT_SECRET", testSecret)

	yaml := `
server:
  port: 8081
database:
  type: sqlite
  dbname: ${RB_DB:./data/test.db}
jwt:
  secret_key: ${RB_JWT_SECRET}
  duration: 2h
upload:
  max_file_size: 1024
cache:
  ttl: 30s
`
	file := filepath.Join(tmp, "apiserver.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cfg, path, err := LoadConfig[APIServerConfig]("apiserver.yaml")
	require.NoError(t, err)
	realFile, _ := filepath.EvalSymlinks(file)
	realPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, realFile, realPath)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "./data/test.db", cfg.Database.DBName)
	assert.Equal(t, testSecret, cfg.JWT.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Duration)
	assert.Equal(t, int64(1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)

	// defaults
	assert.Equal(t, "disk", cfg.Upload.Type)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, 6, cfg.Upload.MaxFiles)
	assert.Equal(t, "rentboard:", cfg.Cache.Prefix)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_RejectsWeakSecret(t *testing.T) {
	tmp := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "apiserver.yaml"), []byte("jwt:\n  secret_key: short\n"), 0o644))

	_, _, err := LoadConfig[APIServerConfig]("apiserver.yaml")
	assert.ErrorContains(t, err, "jwt.secret_key")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	chdirTemp(t)
	_, _, err := LoadConfig[APIServerConfig]("does-not-exist.yaml")
	assert.Error(t, err)
}
