package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FSStore keeps each batch in its own directory under a root directory.
type FSStore struct {
	root   string
	logger *slog.Logger
}

var _ BatchStore = (*FSStore)(nil)

// NewFSStore creates the root directory if needed and returns a store over it.
func NewFSStore(root string, logger *slog.Logger) (*FSStore, error) {
	if root == "" {
		return nil, errors.New("storage directory cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %q: %w", root, err)
	}
	return &FSStore{root: root, logger: logger.With("component", "fs_store")}, nil
}

// Save writes the batch into a staging directory and renames it into place,
// so readers never observe a partial batch.
func (s *FSStore) Save(ctx context.Context, batchID string, files []File) error {
	if err := validateSave(batchID, files); err != nil {
		return err
	}

	final := filepath.Join(s.root, batchID)
	if _, err := os.Stat(final); err == nil {
		return NewStoreError(BackendFS, "save", "batch "+batchID, ErrBatchExists)
	}

	staging, err := os.MkdirTemp(s.root, ".staging-"+batchID+"-")
	if err != nil {
		return NewStoreError(BackendFS, "save", "failed to create staging directory", err)
	}
	cleanup := func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			s.logger.WarnContext(ctx, "failed to remove staging directory", "error", rmErr)
		}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			cleanup()
			return err
		}
		if err := os.WriteFile(filepath.Join(staging, f.Name), f.Data, 0o644); err != nil {
			cleanup()
			return NewStoreError(BackendFS, "save", "failed to write "+f.Name, err)
		}
	}

	if err := os.Rename(staging, final); err != nil {
		cleanup()
		if _, statErr := os.Stat(final); statErr == nil {
			return NewStoreError(BackendFS, "save", "batch "+batchID, ErrBatchExists)
		}
		return NewStoreError(BackendFS, "save", "failed to publish batch", err)
	}

	s.logger.DebugContext(ctx, "batch saved", "batch_id", batchID, "files", len(files))
	return nil
}

// List implements BatchStore.
func (s *FSStore) List(_ context.Context, batchID string) ([]string, error) {
	if err := ValidateBatchID(batchID); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, batchID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewStoreError(BackendFS, "list", "batch "+batchID, ErrBatchNotFound)
		}
		return nil, NewStoreError(BackendFS, "list", "failed to read batch", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && ValidateFileName(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}
	sortBySlideOrder(names)
	return names, nil
}

// Open implements BatchStore.
func (s *FSStore) Open(_ context.Context, batchID, name string) ([]byte, error) {
	if err := validateOpen(batchID, name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.root, batchID, name))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, NewStoreError(BackendFS, "open", "failed to read "+name, err)
	}
	if _, statErr := os.Stat(filepath.Join(s.root, batchID)); statErr != nil {
		return nil, NewStoreError(BackendFS, "open", "batch "+batchID, ErrBatchNotFound)
	}
	return nil, NewStoreError(BackendFS, "open", name, ErrFileNotFound)
}
