package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all backends.
var (
	// ErrNotFound is returned when a requested batch or file does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a write would replace existing data.
	// Batches are write-once.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidKey is returned for batch ids or file names that cannot
	// address stored data, such as path traversal attempts.
	ErrInvalidKey = errors.New("invalid key")

	// ErrBatchNotFound indicates that no batch exists with the given id.
	ErrBatchNotFound = fmt.Errorf("%w: batch", ErrNotFound)

	// ErrFileNotFound indicates that the batch exists but has no such file.
	ErrFileNotFound = fmt.Errorf("%w: file", ErrNotFound)

	// ErrBatchExists indicates that a batch with the given id was already saved.
	ErrBatchExists = fmt.Errorf("%w: batch", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError adds backend and operation context to a store failure.
type StoreError struct {
	Backend   string // The backend (e.g., "fs", "minio")
	Operation string // The operation that failed (e.g., "save", "open")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s store failed: %s: %v", e.Operation, e.Backend, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s store failed: %s", e.Operation, e.Backend, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(backend, operation, message string, err error) *StoreError {
	return &StoreError{
		Backend:   backend,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
