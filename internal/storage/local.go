// Package storage persists uploaded media (track covers, sound effects,
// highlight images) on local disk and hands back URLs under the configured
// public base.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"estudio/internal/config"

	"github.com/rs/zerolog"
)

type LocalStorage struct {
	root    string
	baseURL string
	logger  *zerolog.Logger
}

func NewLocalStorage(cfg config.StorageConfig, logger *zerolog.Logger) (*LocalStorage, error) {
	if cfg.MediaPath == "" {
		return nil, fmt.Errorf("media path is not configured")
	}
	if err := os.MkdirAll(cfg.MediaPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &LocalStorage{
		root:    cfg.MediaPath,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}, nil
}

// Upload writes data under the media root and returns its public URL.
// The object path must stay inside the root; traversal segments are rejected.
func (s *LocalStorage) Upload(_ context.Context, objectPath string, data []byte) (string, error) {
	clean, err := sanitize(objectPath)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media subdirectory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	url := s.baseURL + "/" + clean
	s.logger.Debug().Str("path", clean).Int("size", len(data)).Msg("media file stored")
	return url, nil
}

func sanitize(objectPath string) (string, error) {
	slashed := strings.ReplaceAll(objectPath, "\\", "/")
	for _, segment := range strings.Split(slashed, "/") {
		if segment == ".." {
			return "", fmt.Errorf("invalid media path %q", objectPath)
		}
	}

	clean := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("invalid media path %q", objectPath)
	}
	return clean, nil
}
