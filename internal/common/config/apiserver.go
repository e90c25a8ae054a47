package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	minSecretKeyLength = 32

	defaultPort          = 3000
	defaultUploadDir     = "uploads"
	defaultMaxFileSize   = 2 << 20
	defaultMaxFiles      = 6
	defaultCacheTTL      = 10 * time.Minute
	defaultCachePrefix   = "rentboard:"
	defaultMetricsPath   = "/metrics"
	defaultJWTDuration   = 24 * time.Hour
	defaultI18nDirectory = "configs/i18n"
)

type (
	APIServerConfig struct {
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Logger   LoggerConfig   `yaml:"logger"`
		JWT      JWTConfig      `yaml:"jwt"`
		Upload   UploadConfig   `yaml:"upload"`
		Cache    CacheConfig    `yaml:"cache"`
		Metrics  MetricsConfig  `yaml:"metrics"`
		Tracing  TracingConfig  `yaml:"tracing"`
		I18n     I18nConfig     `yaml:"i18n"`
	}

	ServerConfig struct {
		Port        int      `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"` // allowed browser origins, e.g. the SPA dev server
	}

	// I18nConfig represents the internationalization configuration
	I18nConfig struct {
		Path string `yaml:"path"` // optional directory of extra translation files
	}

	DatabaseConfig struct {
		Type     string `yaml:"type"`     // sqlite, postgres, mysql, mongo
		Host     string `yaml:"host"`     // localhost
		Port     int    `yaml:"port"`     // 3306 (for mysql), 5432 (for postgres)
		User     string `yaml:"user"`     // root (for mysql), postgres (for postgres)
		Password string `yaml:"password"` // password
		DBName   string `yaml:"dbname"`   // database name, file path for sqlite
		SSLMode  string `yaml:"sslmode"`  // disable (for postgres)
		URI      string `yaml:"uri"`      // mongodb://... (for mongo)
	}

	JWTConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	UploadConfig struct {
		Type        string   `yaml:"type"`          // disk or s3
		Dir         string   `yaml:"dir"`           // directory for disk uploads, served under /uploads
		MaxFileSize int64    `yaml:"max_file_size"` // bytes per file
		MaxFiles    int      `yaml:"max_files"`     // files per request
		S3          S3Config `yaml:"s3"`
	}

	S3Config struct {
		Endpoint      string `yaml:"endpoint"`
		Region        string `yaml:"region"`
		Bucket        string `yaml:"bucket"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		UsePathStyle  bool   `yaml:"use_path_style"`
		PublicBaseURL string `yaml:"public_base_url"` // prefix for returned image references
	}

	CacheConfig struct {
		Enabled bool          `yaml:"enabled"`
		Prefix  string        `yaml:"prefix"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   RedisConfig   `yaml:"redis"`
	}

	RedisConfig struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}

	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Namespace string    `yaml:"namespace"`
		Path      string    `yaml:"path"`
		Buckets   []float64 `yaml:"buckets"`
	}

	TracingConfig struct {
		Enabled     bool              `yaml:"enabled"`
		ServiceName string            `yaml:"service_name"`
		Endpoint    string            `yaml:"endpoint"` // e.g. localhost:4317 or localhost:4318
		Protocol    string            `yaml:"protocol"` // grpc or http
		Insecure    bool              `yaml:"insecure"`
		SamplerRate float64           `yaml:"sampler_rate"` // 0.0~1.0
		Environment string            `yaml:"environment"`
		Headers     map[string]string `yaml:"headers"`
	}
)

// SetDefaults fills zero values with the documented defaults
func (c *APIServerConfig) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.Type == "sqlite" && c.Database.DBName == "" {
		c.Database.DBName = "./data/rentboard.db"
	}
	if c.JWT.Duration <= 0 {
		c.JWT.Duration = defaultJWTDuration
	}
	if c.Upload.Type == "" {
		c.Upload.Type = "disk"
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = defaultUploadDir
	}
	if c.Upload.MaxFileSize <= 0 {
		c.Upload.MaxFileSize = defaultMaxFileSize
	}
	if c.Upload.MaxFiles <= 0 {
		c.Upload.MaxFiles = defaultMaxFiles
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = defaultCachePrefix
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = defaultCacheTTL
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "rentboard"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = defaultMetricsPath
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "rentboard-apiserver"
	}
	if c.I18n.Path == "" {
		c.I18n.Path = defaultI18nDirectory
	}
}

// Validate reports configuration that would prevent the server from starting
func (c *APIServerConfig) Validate() error {
	var errs []error
	if len(c.JWT.SecretKey) < minSecretKeyLength {
		errs = append(errs, fmt.Errorf("jwt.secret_key must be at least %d characters", minSecretKeyLength))
	}
	switch c.Database.Type {
	case "sqlite", "postgres", "mysql":
	case "mongo":
		if c.Database.URI == "" {
			errs = append(errs, errors.New("database.uri is required for mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database type: %s", c.Database.Type))
	}
	switch c.Upload.Type {
	case "disk":
	case "s3":
		if c.Upload.S3.Bucket == "" {
			errs = append(errs, errors.New("upload.s3.bucket is required for s3 uploads"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported upload type: %s", c.Upload.Type))
	}
	if c.Cache.Enabled && c.Cache.Redis.Addr == "" {
		errs = append(errs, errors.New("cache.redis.addr is required when cache is enabled"))
	}
	return errors.Join(errs...)
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case "postgres":
		return c.getPostgresDSN()
	case "mysql":
		return c.getMySQLDSN()
	case "mongo":
		return c.URI
	case "sqlite":
		if c.DBName != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(c.DBName), 0755); err != nil {
				panic(fmt.Errorf("failed to create directory for sqlite database: %w", err))
			}
		}
		return c.DBName // For SQLite, DBName is the file path
	default:
		return ""
	}
}

// getPostgresDSN returns PostgreSQL connection string
func (c *DatabaseConfig) getPostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getMySQLDSN returns MySQL connection string
func (c *DatabaseConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}
