package api

import (
	"github.com/phrazzld/carousel-api/internal/catalog"
	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/generation"
)

// AnalyzeForm holds the text fields of the multipart analyze request.
type AnalyzeForm struct {
	BusinessTheme string `json:"businessTheme" validate:"required,min=5,max=200"`
}

// SlideDTO is a slide as exchanged with clients. Title and content limits
// are not enforced here; generated copy over the limits is logged upstream
// and still renderable.
type SlideDTO struct {
	Order           int    `json:"order"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	VisualPrompt    string `json:"visualPrompt"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Emoji           string `json:"emoji,omitempty"`
}

func (s SlideDTO) toDomain() domain.SlideSpec {
	return domain.SlideSpec(s)
}

func slidesToDomain(in []SlideDTO) []domain.SlideSpec {
	out := make([]domain.SlideSpec, len(in))
	for i, s := range in {
		out[i] = s.toDomain()
	}
	return out
}

// AnalyzeResponse is the result of POST /api/analyze.
type AnalyzeResponse struct {
	MarketAnalysis    string `json:"marketAnalysis"`
	ReferenceAnalysis string `json:"referenceAnalysis,omitempty"`
}

// StructureRequest is the payload for POST /api/generate/structure.
type StructureRequest struct {
	SlideCount        int    `json:"slideCount"        validate:"required,min=1,max=10"`
	BusinessTheme     string `json:"businessTheme"     validate:"required,min=5,max=200"`
	LeadMagnet        string `json:"leadMagnet"        validate:"required,min=5,max=300"`
	CodeWord          string `json:"codeWord"          validate:"required,min=2,max=30,codeword"`
	MarketAnalysis    string `json:"marketAnalysis"    validate:"required"`
	ReferenceAnalysis string `json:"referenceAnalysis"`
	StylePreset       string `json:"stylePreset"       validate:"omitempty,oneof=pastel dark-professional bright-contrast minimal gradient-modern"`
}

func (r StructureRequest) toGeneration() generation.StructureRequest {
	return generation.StructureRequest{
		SlideCount:      r.SlideCount,
		Theme:           r.BusinessTheme,
		LeadMagnet:      r.LeadMagnet,
		CodeWord:        r.CodeWord,
		MarketReport:    r.MarketAnalysis,
		ReferenceReport: r.ReferenceAnalysis,
		StylePreset:     r.StylePreset,
	}
}

// SlideContextDTO is the carousel context sent with a regenerate request.
type SlideContextDTO struct {
	Topic          string `json:"topic"          validate:"required"`
	TargetAudience string `json:"targetAudience"`
}

// RegenerateSlideRequest is the payload for POST /api/generate/regenerate-slide.
type RegenerateSlideRequest struct {
	// SlideIndex is a pointer so a missing index is told apart from slide 0.
	SlideIndex   *int            `json:"slideIndex"   validate:"required,min=0"`
	CurrentSlide *SlideDTO       `json:"currentSlide" validate:"required"`
	Context      SlideContextDTO `json:"context"`
}

// SlideResponse wraps a single slide.
type SlideResponse struct {
	Slide domain.SlideSpec `json:"slide"`
}

// ImagesRequest is the payload for POST /api/generate/images.
type ImagesRequest struct {
	Slides       []SlideDTO `json:"slides"       validate:"required,min=1,max=10"`
	TemplateID   string     `json:"templateId"`
	VisualMethod string     `json:"visualMethod"`
	Topic        string     `json:"topic"`
}

// ImagesResponse is the result of POST /api/generate/images.
type ImagesResponse struct {
	CarouselID string                  `json:"carouselId"`
	Slides     []domain.GeneratedSlide `json:"slides"`
}

// PreviewRequest is the payload for POST /api/generate/preview.
type PreviewRequest struct {
	Slide      SlideDTO `json:"slide"`
	TemplateID string   `json:"templateId"`
}

// DownloadResponse lists the slide URLs of a multi-slide batch.
type DownloadResponse struct {
	CarouselID string   `json:"carouselId"`
	Files      []string `json:"files"`
}

// TemplatesResponse lists the catalog templates.
type TemplatesResponse struct {
	Templates []catalog.Template `json:"templates"`
}

// PresetsResponse lists the style presets.
type PresetsResponse struct {
	Presets []catalog.Preset `json:"presets"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	AIEnabled bool   `json:"aiEnabled"`
}
