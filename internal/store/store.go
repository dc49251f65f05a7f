package store

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Backend names, matching the storage.backend config values.
const (
	BackendFS     = "fs"
	BackendMinIO  = "minio"
	BackendMemory = "memory"
)

// PNGContentType is the content type of every stored slide.
const PNGContentType = "image/png"

var fileNamePattern = regexp.MustCompile(`^slide-([1-9][0-9]*)\.png$`)

// File is one stored slide image.
type File struct {
	Name string
	Data []byte
}

// BatchStore persists rendered batches. Save is all-or-nothing from the
// caller's view and never overwrites an existing batch. Implementations
// must be safe for concurrent use.
type BatchStore interface {
	// Save writes all files of a new batch.
	Save(ctx context.Context, batchID string, files []File) error

	// List returns the file names of a batch ordered by slide order.
	// An unknown batch yields ErrBatchNotFound.
	List(ctx context.Context, batchID string) ([]string, error)

	// Open returns the contents of one file.
	Open(ctx context.Context, batchID, name string) ([]byte, error)
}

// ValidateBatchID accepts only canonical UUIDs, which keeps ids safe to use
// as path segments and object key prefixes.
func ValidateBatchID(batchID string) error {
	id, err := uuid.Parse(batchID)
	if err != nil || id.String() != batchID {
		return fmt.Errorf("%w: batch id %q", ErrInvalidKey, batchID)
	}
	return nil
}

// ValidateFileName accepts only slide-{order}.png names.
func ValidateFileName(name string) error {
	if !fileNamePattern.MatchString(name) {
		return fmt.Errorf("%w: file name %q", ErrInvalidKey, name)
	}
	return nil
}

func validateSave(batchID string, files []File) error {
	if err := ValidateBatchID(batchID); err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: batch %s has no files", ErrInvalidKey, batchID)
	}
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if err := ValidateFileName(f.Name); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate file %q", ErrInvalidKey, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func validateOpen(batchID, name string) error {
	if err := ValidateBatchID(batchID); err != nil {
		return err
	}
	return ValidateFileName(name)
}

// sortBySlideOrder orders slide file names numerically so slide-10 follows slide-9.
func sortBySlideOrder(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return slideOrder(names[i]) < slideOrder(names[j])
	})
}

func slideOrder(name string) int {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// PublicURL joins the public path prefix, batch id and file name.
func PublicURL(publicPath, batchID, name string) string {
	return strings.TrimRight(publicPath, "/") + "/" + batchID + "/" + name
}
