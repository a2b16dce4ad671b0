package storage

import (
	"context"
	"fmt"

	infraconfig "github.com/kizora/invoicer/internal/infrastructure/config"
	"github.com/kizora/invoicer/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// NewArchive builds the archive selected by cfg.Backend. It returns nil for
// the "none" backend, in which case exports are not archived.
func NewArchive(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (printing.DocumentArchive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "", infraconfig.StorageNone:
		return nil, nil
	case infraconfig.StorageFileSystem:
		archive, err := printing.NewFileSystemArchive(printing.FileSystemArchiveConfig{
			BasePath: cfg.BasePath,
			BaseURL:  cfg.BaseURL,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		return archive, nil
	case infraconfig.StorageS3:
		archive, err := NewS3Archive(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return archive, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
