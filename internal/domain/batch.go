package domain

import (
	"fmt"
	"strings"
)

// VisualMethod is the wire value selecting how slides are rendered.
type VisualMethod string

// Supported visual methods. ComfyUI is accepted on the wire but not implemented.
const (
	VisualMethodTemplate VisualMethod = "template"
	VisualMethodAI       VisualMethod = "ai"
	VisualMethodComfyUI  VisualMethod = "comfyui"
)

// RenderMode is the tagged rendering variant chosen once per batch.
// Exactly one of the two shapes is meaningful: template mode with an
// optional template id, or AI mode.
type RenderMode struct {
	ai         bool
	templateID string
}

// TemplateMode renders slides from the static template catalog.
// An empty templateID derives the template from each slide's color.
func TemplateMode(templateID string) RenderMode {
	return RenderMode{templateID: strings.TrimSpace(templateID)}
}

// AIMode renders whole slides through the external image-generation service.
func AIMode() RenderMode {
	return RenderMode{ai: true}
}

// IsAI reports whether this is AI mode.
func (m RenderMode) IsAI() bool { return m.ai }

// TemplateID returns the explicit template id for template mode.
func (m RenderMode) TemplateID() string { return m.templateID }

// String implements fmt.Stringer.
func (m RenderMode) String() string {
	if m.ai {
		return string(VisualMethodAI)
	}
	if m.templateID != "" {
		return fmt.Sprintf("%s(%s)", VisualMethodTemplate, m.templateID)
	}
	return string(VisualMethodTemplate)
}

// ParseRenderMode maps a wire visual method to a RenderMode. An empty method
// means template mode.
func ParseRenderMode(method VisualMethod, templateID string) (RenderMode, error) {
	switch method {
	case "", VisualMethodTemplate:
		return TemplateMode(templateID), nil
	case VisualMethodAI:
		return AIMode(), nil
	case VisualMethodComfyUI:
		return RenderMode{}, NewValidationError("visualMethod", "comfyui rendering is not implemented", nil)
	default:
		return RenderMode{}, NewValidationError("visualMethod", fmt.Sprintf("unknown method %q", method), nil)
	}
}

// GeneratedSlide is one rendered slide written to the batch store.
type GeneratedSlide struct {
	Order    int    `json:"order"`
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
	Content  string `json:"content"`

	// Image holds the encoded PNG bytes until the slide is persisted.
	Image []byte `json:"-"`
}

// Batch is an immutable set of rendered slides sharing one id.
type Batch struct {
	ID     string           `json:"carouselId"`
	Slides []GeneratedSlide `json:"slides"`
}

// SlideFileName is the storage file name for the slide at a 1-based order.
func SlideFileName(order int) string {
	return fmt.Sprintf("slide-%d.png", order)
}
