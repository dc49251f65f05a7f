package gemini

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/carousel-api/internal/config"
	"github.com/phrazzld/carousel-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	_, err := New(ctx, nil, config.LLMConfig{GeminiAPIKey: "k", FastModel: "f", SmartModel: "s"}, nil)
	assert.Error(t, err)

	_, err = New(ctx, logger, config.LLMConfig{FastModel: "f", SmartModel: "s"}, nil)
	assert.ErrorContains(t, err, "API key")

	_, err = New(ctx, logger, config.LLMConfig{GeminiAPIKey: "k", FastModel: "f"}, nil)
	assert.ErrorContains(t, err, "model names")
}

func TestBuildContents(t *testing.T) {
	t.Parallel()

	contents := buildContents([]generation.Message{
		{Text: "Analyze this", Images: []generation.Image{{Data: []byte{1, 2, 3}, MIMEType: "image/png"}}},
		{},
		{Text: "second"},
	})

	require.Len(t, contents, 2)
	first := contents[0]
	assert.Equal(t, genai.RoleUser, first.Role)
	require.Len(t, first.Parts, 2)
	require.NotNil(t, first.Parts[0].InlineData)
	assert.Equal(t, "image/png", first.Parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, first.Parts[0].InlineData.Data)
	assert.Equal(t, "Analyze this", first.Parts[1].Text)
	assert.Equal(t, "second", contents[1].Parts[0].Text)
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	cfg := buildConfig(generation.CompletionRequest{
		System:      "be concise",
		MaxTokens:   2000,
		Temperature: 0.8,
		JSON:        true,
	})

	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.8, *cfg.Temperature, 0.0001)
	assert.Equal(t, int32(2000), cfg.MaxOutputTokens)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be concise", cfg.SystemInstruction.Parts[0].Text)

	plain := buildConfig(generation.CompletionRequest{Temperature: 0.7})
	assert.Nil(t, plain.SystemInstruction)
	assert.Empty(t, plain.ResponseMIMEType)
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	t.Run("joins text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: `{"topic":`}, {Text: `"x"}`}}},
		}}}
		got, err := extractText(resp)
		require.NoError(t, err)
		assert.Equal(t, `{"topic":"x"}`, got)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := extractText(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, ErrNoCandidates)
		_, err = extractText(nil)
		assert.ErrorIs(t, err, ErrNoCandidates)
	})

	t.Run("safety block", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}
		_, err := extractText(resp)
		assert.ErrorIs(t, err, ErrContentBlocked)
	})

	t.Run("empty content", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}
		got, err := extractText(resp)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
