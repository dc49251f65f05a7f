package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      error
		kind     Kind
		sentinel error
	}{
		{"validation", NewValidationError("codeWord", "is required", nil), KindValidation, ErrValidation},
		{"upstream", NewUpstreamError("analyze market", "gemini", cause), KindUpstream, ErrUpstream},
		{"malformed", NewMalformedOutputError("generate structure", "invalid JSON", cause), KindMalformedOutput, ErrMalformedOutput},
		{"timeout", NewTimeoutError("resolve image", "kie.ai", context.DeadlineExceeded), KindTimeout, ErrTimeout},
		{"not_found", NewNotFoundError("batch", "abc"), KindNotFound, ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tc.err)
			assert.Equal(t, tc.kind, KindOf(wrapped))
			assert.ErrorIs(t, wrapped, tc.sentinel)
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewUpstreamError("submit job", "kie.ai", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, "kie.ai", ServiceOf(err))
	assert.Equal(t, "submit job: kie.ai: upstream service failed: connection refused", err.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError("businessTheme", "is required", nil)
	assert.Equal(t, "businessTheme is required", err.Error())
}

func TestKindOfBareErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindTimeout, KindOf(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	err := FromContext("render all", "", context.DeadlineExceeded)
	assert.Equal(t, KindTimeout, KindOf(err))

	err = FromContext("render all", "", context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "malformed_output", KindMalformedOutput.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
