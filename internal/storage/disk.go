package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// PublicPrefix is the route disk stored images are served under
const PublicPrefix = "/uploads"

// DiskStorage implements ImageStorage using local disk
type DiskStorage struct {
	logger  *zap.Logger
	baseDir string
}

// NewDiskStorage creates a new disk storage
func NewDiskStorage(logger *zap.Logger, baseDir string) (*DiskStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &DiskStorage{
		logger:  logger.Named("storage.disk"),
		baseDir: baseDir,
	}, nil
}

// Dir returns the directory images are written to
func (s *DiskStorage) Dir() string {
	return s.baseDir
}

func (s *DiskStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	return filepath.Join(s.baseDir, name), nil
}

// Save writes content to <baseDir>/<name>
func (s *DiskStorage) Save(ctx context.Context, name, contentType string, content io.ReadSeeker) (string, error) {
	filePath, err := s.path(name)
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		_ = os.Remove(filePath)
		return "", err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(filePath)
		return "", err
	}

	s.logger.Debug("image stored", zap.String("name", name), zap.String("content_type", contentType))
	return path.Join(PublicPrefix, name), nil
}

// Delete removes <baseDir>/<name>
func (s *DiskStorage) Delete(ctx context.Context, name string) error {
	filePath, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(filePath)
}
