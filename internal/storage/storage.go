package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amoylab/rentboard/internal/common/config"
	"go.uber.org/zap"
)

// ImageStorage stores uploaded listing images
type ImageStorage interface {
	// Save stores content under name and returns the reference clients use to fetch it
	Save(ctx context.Context, name, contentType string, content io.ReadSeeker) (string, error)

	// Delete removes a stored image
	Delete(ctx context.Context, name string) error
}

// NewImageStorage creates the backend selected by upload.type
func NewImageStorage(cfg *config.UploadConfig, logger *zap.Logger) (ImageStorage, error) {
	switch cfg.Type {
	case "", "disk":
		return NewDiskStorage(logger, cfg.Dir)
	case "s3":
		return NewS3Storage(&cfg.S3, WithLogger(logger))
	default:
		return nil, fmt.Errorf("unsupported upload type: %s", cfg.Type)
	}
}

// ObjectName builds the stored name of an upload: <unix-millis>-<sanitized original>
func ObjectName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), ".-")
	if name == "" {
		name = "image"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + name
}
