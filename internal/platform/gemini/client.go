package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/carousel-api/internal/config"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/generation"
	"google.golang.org/genai"
)

// serviceName identifies Gemini in domain errors.
const serviceName = "gemini"

const opGenerateContent = "generate content"

// jsonMIMEType asks Gemini for a JSON-only answer.
const jsonMIMEType = "application/json"

// Client implements generation.LLM using the Gemini API.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// models maps completion tiers to Gemini model names
	models map[generation.Tier]string
}

var _ generation.LLM = (*Client)(nil)

// New creates a Gemini-backed LLM client.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key and model names
//   - httpClient: Optional HTTP client; nil uses the SDK default
//
// Returns:
//   - A properly initialized Client or an error if initialization fails
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, httpClient *http.Client) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if cfg.FastModel == "" || cfg.SmartModel == "" {
		return nil, errors.New("gemini model names cannot be empty")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		logger: logger.With("component", "gemini"),
		client: client,
		models: map[generation.Tier]string{
			generation.TierFast:  cfg.FastModel,
			generation.TierSmart: cfg.SmartModel,
		},
	}, nil
}

// Complete implements generation.LLM. It makes a single attempt; retry
// policy belongs to callers.
func (c *Client) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	model := c.models[req.Tier]
	contents := buildContents(req.Messages)
	if len(contents) == 0 {
		return "", domain.NewValidationError("messages", "at least one message is required", nil)
	}

	c.logger.DebugContext(ctx, "calling Gemini",
		"model", model,
		"messages", len(contents),
		"json", req.JSON,
		"max_tokens", req.MaxTokens)

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, buildConfig(req))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.NewTimeoutError(opGenerateContent, serviceName, err)
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", domain.NewUpstreamError(opGenerateContent, serviceName, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", domain.NewUpstreamError(opGenerateContent, serviceName, err)
	}
	return text, nil
}

// buildContents converts user turns to genai contents. Images precede the
// text part of their turn. Empty turns are dropped.
func buildContents(msgs []generation.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		parts := make([]*genai.Part, 0, len(m.Images)+1)
		for _, img := range m.Images {
			if len(img.Data) == 0 {
				continue
			}
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType}})
		}
		if m.Text != "" {
			parts = append(parts, &genai.Part{Text: m.Text})
		}
		if len(parts) == 0 {
			continue
		}
		contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: parts})
	}
	return contents
}

func buildConfig(req generation.CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxTokens,
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.JSON {
		cfg.ResponseMIMEType = jsonMIMEType
	}
	return cfg
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}
