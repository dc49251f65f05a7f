package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/carousel-api/internal/domain"
)

// llmService names the language model in errors that did not come from an adapter.
const llmService = "language model"

var (
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("language model returned no content")

	// ErrNoSlides is returned when a parsed structure has no slides.
	ErrNoSlides = errors.New("structure has no slides")

	// ErrTooFewSlides is returned when the model returns fewer slides than requested.
	ErrTooFewSlides = errors.New("structure has fewer slides than requested")
)

// wrapCallError classifies a failed LLM call. Tagged errors from the adapter
// keep their kind; deadlines become timeouts; anything else is upstream.
func wrapCallError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTimeoutError(op, llmService, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if domain.KindOf(err) != domain.KindUnknown {
		return fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewUpstreamError(op, llmService, err)
}
