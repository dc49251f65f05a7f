package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps batches in process memory and expires them after a TTL.
// Intended for development and tests.
type MemoryStore struct {
	cache  *cache.Cache
	logger *slog.Logger
}

var _ BatchStore = (*MemoryStore)(nil)

// memoryBatch is an immutable snapshot of a saved batch.
type memoryBatch struct {
	names []string
	files map[string][]byte
}

// NewMemoryStore creates a store whose batches expire after ttl.
// A non-positive ttl keeps batches until the process exits.
func NewMemoryStore(ttl time.Duration, logger *slog.Logger) (*MemoryStore, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	expiration, cleanup := ttl, ttl*2
	if ttl <= 0 {
		expiration, cleanup = cache.NoExpiration, 0
	}
	return &MemoryStore{
		cache:  cache.New(expiration, cleanup),
		logger: logger.With("component", "memory_store"),
	}, nil
}

// Save implements BatchStore.
func (s *MemoryStore) Save(ctx context.Context, batchID string, files []File) error {
	if err := validateSave(batchID, files); err != nil {
		return err
	}

	b := memoryBatch{
		names: make([]string, 0, len(files)),
		files: make(map[string][]byte, len(files)),
	}
	for _, f := range files {
		b.names = append(b.names, f.Name)
		b.files[f.Name] = append([]byte(nil), f.Data...)
	}
	sortBySlideOrder(b.names)

	// Add fails when the key is present and unexpired.
	if err := s.cache.Add(batchID, b, cache.DefaultExpiration); err != nil {
		return NewStoreError(BackendMemory, "save", "batch "+batchID, ErrBatchExists)
	}

	s.logger.DebugContext(ctx, "batch saved", "batch_id", batchID, "files", len(files))
	return nil
}

func (s *MemoryStore) get(op, batchID string) (memoryBatch, error) {
	v, ok := s.cache.Get(batchID)
	if !ok {
		return memoryBatch{}, NewStoreError(BackendMemory, op, "batch "+batchID, ErrBatchNotFound)
	}
	return v.(memoryBatch), nil
}

// List implements BatchStore.
func (s *MemoryStore) List(_ context.Context, batchID string) ([]string, error) {
	if err := ValidateBatchID(batchID); err != nil {
		return nil, err
	}
	b, err := s.get("list", batchID)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), b.names...), nil
}

// Open implements BatchStore.
func (s *MemoryStore) Open(_ context.Context, batchID, name string) ([]byte, error) {
	if err := validateOpen(batchID, name); err != nil {
		return nil, err
	}
	b, err := s.get("open", batchID)
	if err != nil {
		return nil, err
	}
	data, ok := b.files[name]
	if !ok {
		return nil, NewStoreError(BackendMemory, "open", name, ErrFileNotFound)
	}
	return append([]byte(nil), data...), nil
}
