package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/phrazzld/carousel-api/internal/config"
)

// manifestName is the object written last for each batch. A batch without a
// manifest is incomplete and treated as absent.
const manifestName = "manifest.json"

const minioCodeNoSuchKey = "NoSuchKey"

type manifest struct {
	Files []string `json:"files"`
}

// MinIOStore keeps batches in an S3-compatible bucket under "{batchID}/".
type MinIOStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

var _ BatchStore = (*MinIOStore)(nil)

// NewMinIOStore connects to the object store and creates the bucket if it
// does not exist.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig, logger *slog.Logger) (*MinIOStore, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("minio endpoint and bucket are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
		logger.InfoContext(ctx, "bucket created", "bucket", cfg.Bucket)
	}

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With("component", "minio_store"),
	}, nil
}

func objectKey(batchID, name string) string {
	return path.Join(batchID, name)
}

// Save uploads every slide, then the manifest that publishes the batch.
func (s *MinIOStore) Save(ctx context.Context, batchID string, files []File) error {
	if err := validateSave(batchID, files); err != nil {
		return err
	}

	if _, err := s.client.StatObject(ctx, s.bucket, objectKey(batchID, manifestName), minio.StatObjectOptions{}); err == nil {
		return NewStoreError(BackendMinIO, "save", "batch "+batchID, ErrBatchExists)
	} else if minio.ToErrorResponse(err).Code != minioCodeNoSuchKey {
		return NewStoreError(BackendMinIO, "save", "failed to check batch", err)
	}

	m := manifest{Files: make([]string, 0, len(files))}
	for _, f := range files {
		if err := s.put(ctx, objectKey(batchID, f.Name), f.Data, PNGContentType); err != nil {
			return NewStoreError(BackendMinIO, "save", "failed to upload "+f.Name, err)
		}
		m.Files = append(m.Files, f.Name)
	}
	sortBySlideOrder(m.Files)

	body, err := json.Marshal(m)
	if err != nil {
		return NewStoreError(BackendMinIO, "save", "failed to encode manifest", err)
	}
	if err := s.put(ctx, objectKey(batchID, manifestName), body, "application/json"); err != nil {
		return NewStoreError(BackendMinIO, "save", "failed to upload manifest", err)
	}

	s.logger.DebugContext(ctx, "batch saved", "batch_id", batchID, "files", len(files), "bucket", s.bucket)
	return nil
}

func (s *MinIOStore) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

// get reads a whole object. A missing key yields ErrNotFound.
func (s *MinIOStore) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == minioCodeNoSuchKey {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// List reads the batch manifest.
func (s *MinIOStore) List(ctx context.Context, batchID string) ([]string, error) {
	if err := ValidateBatchID(batchID); err != nil {
		return nil, err
	}

	body, err := s.get(ctx, objectKey(batchID, manifestName))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewStoreError(BackendMinIO, "list", "batch "+batchID, ErrBatchNotFound)
		}
		return nil, NewStoreError(BackendMinIO, "list", "failed to read manifest", err)
	}

	var m manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, NewStoreError(BackendMinIO, "list", "invalid manifest", err)
	}
	return m.Files, nil
}

// Open implements BatchStore.
func (s *MinIOStore) Open(ctx context.Context, batchID, name string) ([]byte, error) {
	if err := validateOpen(batchID, name); err != nil {
		return nil, err
	}

	data, err := s.get(ctx, objectKey(batchID, name))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, NewStoreError(BackendMinIO, "open", "failed to read "+name, err)
	}
	if _, listErr := s.List(ctx, batchID); listErr != nil {
		return nil, listErr
	}
	return nil, NewStoreError(BackendMinIO, "open", name, ErrFileNotFound)
}
