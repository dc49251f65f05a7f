package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrContentBlocked is returned when Gemini stops a candidate for safety reasons.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrNoCandidates is returned when a response carries no usable candidate.
	ErrNoCandidates = errors.New("response contains no candidates")
)
