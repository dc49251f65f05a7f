package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/carousel-api/internal/api/shared"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/imagejob"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("slides", "is required", nil), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("handler: %w", domain.NewValidationError("codeWord", "bad", nil)), http.StatusBadRequest},
		{"not found", domain.NewNotFoundError("batch", "x"), http.StatusNotFound},
		{"upstream", domain.NewUpstreamError("op", "gemini", errors.New("boom")), http.StatusInternalServerError},
		{"malformed", domain.NewMalformedOutputError("op", "bad json", nil), http.StatusInternalServerError},
		{"timeout", domain.NewTimeoutError("op", "kie.ai", context.DeadlineExceeded), http.StatusInternalServerError},
		{"bare deadline", context.DeadlineExceeded, http.StatusInternalServerError},
		{"unknown", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"field validation", domain.NewValidationError("slideCount", "must be between 1 and 10", nil), "Invalid slideCount: must be between 1 and 10"},
		{"message only", domain.NewValidationError("", "Invalid request format", errors.New("unexpected EOF")), "Invalid request format"},
		{"not found", domain.NewNotFoundError("batch", "abc"), "Carousel not found"},
		{"named upstream", domain.NewUpstreamError("generate content", "gemini", errors.New("quota exhausted")), "gemini error: quota exhausted"},
		{"anonymous upstream", &domain.Error{Kind: domain.KindUpstream}, "An external service failed. Please try again"},
		{"malformed", domain.NewMalformedOutputError("generate structure", "invalid JSON", nil), "The language model returned an unusable response. Please try again"},
		{"timeout", domain.NewTimeoutError("analyze market", "gemini", context.DeadlineExceeded), "The request timed out. Please try again"},
		{"unknown", errors.New("disk on fire"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetImageErrorMessage(t *testing.T) {
	t.Parallel()

	imageServiceErr := domain.NewUpstreamError("resolve image job", imagejob.ServiceName, errors.New("job failed: content policy"))
	timeoutErr := fmt.Errorf("render slides: slide 2: %w",
		domain.NewTimeoutError("resolve image job", imagejob.ServiceName, context.DeadlineExceeded))
	otherUpstream := domain.NewUpstreamError("generate content", "gemini", errors.New("unavailable"))

	assert.Equal(t, "Image service kie.ai error: job failed: content policy", GetImageErrorMessage(imageServiceErr))
	assert.Contains(t, GetImageErrorMessage(timeoutErr), "template mode")
	assert.Equal(t, "AI service error. Please try again later", GetImageErrorMessage(otherUpstream))
	assert.Equal(t, "Invalid slides: is required",
		GetImageErrorMessage(domain.NewValidationError("slides", "is required", nil)))

	// The three upstream categories never share a message.
	msgs := map[string]bool{
		GetImageErrorMessage(imageServiceErr): true,
		GetImageErrorMessage(timeoutErr):      true,
		GetImageErrorMessage(otherUpstream):   true,
	}
	assert.Len(t, msgs, 3)
}

func TestImageErrorMessageRedactsCause(t *testing.T) {
	t.Parallel()

	err := domain.NewUpstreamError("submit image job", imagejob.ServiceName,
		errors.New("POST https://api.kie.ai/api/v1/jobs/createTask?token=supersecretvalue123: 503"))

	msg := GetImageErrorMessage(err)
	assert.Contains(t, msg, "Image service kie.ai error")
	assert.NotContains(t, msg, "supersecretvalue123")
	assert.NotContains(t, msg, "api.kie.ai")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  StructureRequest
		want string
	}{
		{
			name: "short theme",
			req:  validStructureRequest(func(r *StructureRequest) { r.BusinessTheme = "abc" }),
			want: "Invalid businessTheme: must be at least 5 characters",
		},
		{
			name: "too many slides",
			req:  validStructureRequest(func(r *StructureRequest) { r.SlideCount = 11 }),
			want: "Invalid slideCount: must be at most 10",
		},
		{
			name: "bad code word",
			req:  validStructureRequest(func(r *StructureRequest) { r.CodeWord = "two words" }),
			want: "Invalid codeWord: only letters, digits and _ are allowed",
		},
		{
			name: "unknown preset",
			req:  validStructureRequest(func(r *StructureRequest) { r.StylePreset = "neon" }),
			want: "Invalid stylePreset: must be one of pastel dark-professional bright-contrast minimal gradient-modern",
		},
		{
			name: "missing analysis",
			req:  validStructureRequest(func(r *StructureRequest) { r.MarketAnalysis = "" }),
			want: "Invalid marketAnalysis: required field",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := shared.ValidateRequest(tc.req)
			assert.Equal(t, tc.want, SanitizeValidationError(err))
		})
	}

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
