package service

import "errors"

// Sentinel errors wrapped by the tagged domain errors the service returns.
// Callers classify with domain.KindOf and may check these with errors.Is.
var (
	// ErrAIDisabled indicates AI rendering was requested but no image service
	// is configured. Wrapped in a validation error; there is no silent
	// fallback to template mode.
	ErrAIDisabled = errors.New("AI image generation is not enabled")

	// ErrEmptyBatch indicates a stored batch that holds no slides.
	ErrEmptyBatch = errors.New("batch has no slides")
)
