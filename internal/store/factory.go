package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/carousel-api/internal/config"
)

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (BatchStore, error) {
	switch cfg.Backend {
	case BackendFS:
		return NewFSStore(cfg.Dir, logger)
	case BackendMinIO:
		return NewMinIOStore(ctx, cfg.MinIO, logger)
	case BackendMemory:
		return NewMemoryStore(cfg.MemoryTTL, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
