package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrBatchNotFound", err: ErrBatchNotFound, expected: true},
		{name: "ErrFileNotFound", err: ErrFileNotFound, expected: true},
		{name: "wrapped in StoreError", err: NewStoreError(BackendFS, "list", "batch x", ErrBatchNotFound), expected: true},
		{name: "wrapped twice", err: fmt.Errorf("fetch: %w", NewStoreError(BackendMinIO, "open", "f", ErrFileNotFound)), expected: true},
		{name: "duplicate is not not-found", err: ErrBatchExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrBatchExists))
	assert.True(t, IsDuplicateError(NewStoreError(BackendMemory, "save", "batch x", ErrBatchExists)))
	assert.False(t, IsDuplicateError(ErrBatchNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreErrorMessage(t *testing.T) {
	err := NewStoreError(BackendFS, "save", "failed to write slide-1.png", errors.New("disk full"))
	assert.Equal(t, "save operation on fs store failed: failed to write slide-1.png: disk full", err.Error())

	bare := NewStoreError(BackendFS, "save", "no files", nil)
	assert.Equal(t, "save operation on fs store failed: no files", bare.Error())
}
