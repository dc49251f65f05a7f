package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/carousel-api/internal/catalog"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/prompts"
)

// Sampling parameters per call.
const (
	marketMaxTokens      int32   = 800
	marketTemperature    float32 = 0.7
	referenceMaxTokens   int32   = 500
	referenceTemperature float32 = 0.5
	structureMaxTokens   int32   = 2000
	structureTemperature float32 = 0.8
	regenerateMaxTokens  int32   = 300
	regenerateTemp       float32 = 0.9
)

// Operation names used in errors and logs.
const (
	opAnalyzeMarket     = "analyze market"
	opAnalyzeReference  = "analyze reference"
	opGenerateStructure = "generate structure"
	opRegenerateSlide   = "regenerate slide"
)

// StructureRequest is the user input for structure generation.
type StructureRequest struct {
	SlideCount      int
	Theme           string
	LeadMagnet      string
	CodeWord        string
	MarketReport    string
	ReferenceReport string
	// StylePreset is an optional catalog preset id.
	StylePreset string
}

// Generator produces market reports and carousel structures.
type Generator struct {
	llm    LLM
	logger *slog.Logger
}

// NewGenerator creates a Generator over llm.
func NewGenerator(llm LLM, logger *slog.Logger) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Generator{
		llm:    llm,
		logger: logger.With("component", "generator"),
	}, nil
}

// AnalyzeMarket returns a free-text market report for theme.
func (g *Generator) AnalyzeMarket(ctx context.Context, theme string) (string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return "", domain.NewValidationError("businessTheme", "is required", nil)
	}

	user, err := prompts.MarketUser(theme)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opAnalyzeMarket, err)
	}

	return g.completeText(ctx, opAnalyzeMarket, CompletionRequest{
		Tier:        TierFast,
		System:      prompts.MarketSystem(),
		Messages:    []Message{{Text: user}},
		MaxTokens:   marketMaxTokens,
		Temperature: marketTemperature,
	})
}

// AnalyzeReference returns a semi-structured description of a reference
// carousel image, including explicit hex color call-outs.
func (g *Generator) AnalyzeReference(ctx context.Context, img Image) (string, error) {
	if len(img.Data) == 0 {
		return "", domain.NewValidationError("reference", "image is empty", nil)
	}
	if img.MIMEType == "" {
		img.MIMEType = "image/jpeg"
	}

	return g.completeText(ctx, opAnalyzeReference, CompletionRequest{
		Tier:        TierSmart,
		System:      prompts.ReferenceSystem(),
		Messages:    []Message{{Text: prompts.ReferenceUser(), Images: []Image{img}}},
		MaxTokens:   referenceMaxTokens,
		Temperature: referenceTemperature,
	})
}

// completeText runs a free-text completion. An empty answer is an upstream failure.
func (g *Generator) completeText(ctx context.Context, op string, req CompletionRequest) (string, error) {
	g.logger.DebugContext(ctx, "requesting completion", "op", op, "tier", req.Tier.String())

	text, err := g.llm.Complete(ctx, req)
	if err != nil {
		return "", wrapCallError(op, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.NewUpstreamError(op, llmService, ErrEmptyResponse)
	}

	g.logger.DebugContext(ctx, "completion received", "op", op, "length", len(text))
	return text, nil
}

// GenerateStructure asks the model for a full carousel script and enforces the
// structural invariants on the result: exactly SlideCount slides, numbered
// 1..N, with the code word present in the final slide and the CTA.
func (g *Generator) GenerateStructure(ctx context.Context, req StructureRequest) (*domain.CarouselStructure, error) {
	if err := validateStructureRequest(req); err != nil {
		return nil, err
	}

	user, err := prompts.StructureUser(prompts.StructureInput{
		SlideCount:      req.SlideCount,
		Theme:           req.Theme,
		LeadMagnet:      req.LeadMagnet,
		CodeWord:        req.CodeWord,
		MarketReport:    req.MarketReport,
		ReferenceReport: req.ReferenceReport,
		StyleHint:       catalog.StyleHint(req.StylePreset),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGenerateStructure, err)
	}

	g.logger.InfoContext(ctx, "generating carousel structure",
		"slide_count", req.SlideCount,
		"style_preset", req.StylePreset,
		"has_reference", req.ReferenceReport != "")

	raw, err := g.llm.Complete(ctx, CompletionRequest{
		Tier:        TierSmart,
		System:      prompts.StructureSystem(),
		Messages:    []Message{{Text: user}},
		MaxTokens:   structureMaxTokens,
		Temperature: structureTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, wrapCallError(opGenerateStructure, err)
	}

	var structure domain.CarouselStructure
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &structure); err != nil {
		g.logger.WarnContext(ctx, "structure response is not valid JSON", "length", len(raw))
		return nil, domain.NewMalformedOutputError(opGenerateStructure, "response is not valid JSON", err)
	}

	if err := g.reconcileSlideCount(ctx, &structure, req.SlideCount); err != nil {
		return nil, err
	}

	structure.NormalizeOrder()
	if structure.EnforceCodeWord(req.CodeWord, req.LeadMagnet) {
		g.logger.InfoContext(ctx, "code word inserted into structure", "code_word", req.CodeWord)
	}

	if violations := structure.LimitViolations(); len(violations) > 0 {
		g.logger.WarnContext(ctx, "structure exceeds copy limits", "violations", violations)
	}

	return &structure, nil
}

// reconcileSlideCount trims an overlong structure to want slides, keeping the
// model's closing slide. A short structure is malformed output.
func (g *Generator) reconcileSlideCount(ctx context.Context, s *domain.CarouselStructure, want int) error {
	got := len(s.Slides)
	switch {
	case got == 0:
		return domain.NewMalformedOutputError(opGenerateStructure, "no slides returned", ErrNoSlides)
	case got < want:
		return domain.NewMalformedOutputError(opGenerateStructure,
			fmt.Sprintf("got %d slides, want %d", got, want), ErrTooFewSlides)
	case got > want:
		g.logger.WarnContext(ctx, "model returned extra slides, trimming", "got", got, "want", want)
		last := s.Slides[got-1]
		s.Slides = append(s.Slides[:want-1:want-1], last)
	}
	return nil
}

func validateStructureRequest(req StructureRequest) error {
	switch {
	case req.SlideCount < domain.MinSlideCount || req.SlideCount > domain.MaxSlideCount:
		return domain.NewValidationError("slideCount",
			fmt.Sprintf("must be between %d and %d", domain.MinSlideCount, domain.MaxSlideCount), nil)
	case strings.TrimSpace(req.Theme) == "":
		return domain.NewValidationError("businessTheme", "is required", nil)
	case strings.TrimSpace(req.LeadMagnet) == "":
		return domain.NewValidationError("leadMagnet", "is required", nil)
	case strings.TrimSpace(req.CodeWord) == "":
		return domain.NewValidationError("codeWord", "is required", nil)
	case strings.TrimSpace(req.MarketReport) == "":
		return domain.NewValidationError("marketAnalysis", "is required", nil)
	}
	return nil
}

// regeneratedSlide is the partial slide returned by the model.
type regeneratedSlide struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	VisualPrompt string `json:"visualPrompt"`
	Emoji        string `json:"emoji"`
}

// RegenerateSlide asks the model for an alternative version of one slide.
// Fields the model omits keep their current values; order and background
// color are never taken from the model.
func (g *Generator) RegenerateSlide(ctx context.Context, index int, current domain.SlideSpec, sc domain.SlideContext) (domain.SlideSpec, error) {
	if strings.TrimSpace(current.Title) == "" && strings.TrimSpace(current.Content) == "" {
		return domain.SlideSpec{}, domain.NewValidationError("currentSlide", "title or content is required", nil)
	}

	user, err := prompts.Regenerate(prompts.RegenerateInput{
		Title:          current.Title,
		Content:        current.Content,
		Topic:          sc.Topic,
		TargetAudience: sc.TargetAudience,
	})
	if err != nil {
		return domain.SlideSpec{}, fmt.Errorf("%s: %w", opRegenerateSlide, err)
	}

	g.logger.InfoContext(ctx, "regenerating slide", "slide_index", index, "order", current.Order)

	raw, err := g.llm.Complete(ctx, CompletionRequest{
		Tier:        TierFast,
		Messages:    []Message{{Text: user}},
		MaxTokens:   regenerateMaxTokens,
		Temperature: regenerateTemp,
		JSON:        true,
	})
	if err != nil {
		return domain.SlideSpec{}, wrapCallError(opRegenerateSlide, err)
	}

	var parsed regeneratedSlide
	if body := stripCodeFence(raw); body != "" {
		if err := json.Unmarshal([]byte(body), &parsed); err != nil {
			return domain.SlideSpec{}, domain.NewMalformedOutputError(opRegenerateSlide, "response is not valid JSON", err)
		}
	}

	return domain.SlideSpec{
		Order:           current.Order,
		Title:           firstNonEmpty(parsed.Title, current.Title),
		Content:         firstNonEmpty(parsed.Content, current.Content),
		VisualPrompt:    firstNonEmpty(parsed.VisualPrompt, current.VisualPrompt),
		BackgroundColor: current.BackgroundColor,
		Emoji:           firstNonEmpty(parsed.Emoji, current.Emoji),
	}, nil
}

func firstNonEmpty(candidate, fallback string) string {
	if strings.TrimSpace(candidate) != "" {
		return candidate
	}
	return fallback
}

// stripCodeFence removes a surrounding ```json fence some models add even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
