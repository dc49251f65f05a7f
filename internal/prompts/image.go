package prompts

import "strings"

// Position is where a slide sits in its carousel.
type Position int

const (
	PositionMiddle Position = iota
	PositionFirst
	PositionLast
)

// PositionOf classifies a 1-based slide order within total slides.
// A single-slide carousel counts as first.
func PositionOf(order, total int) Position {
	switch {
	case order == 1:
		return PositionFirst
	case order == total:
		return PositionLast
	default:
		return PositionMiddle
	}
}

// minVisualPromptLength is the shortest visual prompt used verbatim.
const minVisualPromptLength = 10

var baseBackgroundStyle = []string{
	"minimalist design",
	"suitable for text overlay",
	"Instagram carousel style",
	"no text or letters",
	"clean and modern",
	"professional aesthetic",
}

var backgroundStyleByPosition = map[Position][]string{
	PositionFirst:  {"attention-grabbing", "bold dynamic colors", "high contrast", "eye-catching gradient"},
	PositionLast:   {"call to action vibe", "warm inviting tones", "encouraging atmosphere", "soft welcoming gradient"},
	PositionMiddle: {"balanced composition", "smooth gradients", "calm professional look"},
}

var fullSlideStyleByPosition = map[Position]string{
	PositionFirst:  "attention-grabbing, bold dynamic colors, high contrast, eye-catching",
	PositionLast:   "warm inviting tones, encouraging atmosphere, call to action vibe",
	PositionMiddle: "balanced composition, calm professional look, smooth colors",
}

// BackgroundPrompt builds a text-free background prompt for one slide. Visual
// prompts shorter than ten characters are replaced by a generic one for topic.
func BackgroundPrompt(visualPrompt, topic string, order, total int) string {
	base := strings.TrimSpace(visualPrompt)
	if len([]rune(base)) < minVisualPromptLength {
		base = "Abstract gradient background for " + topic
	}

	style := append(append([]string(nil), baseBackgroundStyle...), backgroundStyleByPosition[PositionOf(order, total)]...)
	return base + ", " + strings.Join(style, ", ") + ", square format 1:1"
}

// FullSlideInput describes one finished slide for the image model.
type FullSlideInput struct {
	Order           int
	Total           int
	Title           string
	Content         string
	Emoji           string
	BackgroundColor string
	Width           int
	Height          int
}

// FullSlidePrompt builds the prompt asking the image model to draw an entire
// slide, text included.
func FullSlidePrompt(in FullSlideInput) (string, error) {
	colorHint := "vibrant gradient background"
	if in.BackgroundColor != "" {
		colorHint = "background color " + in.BackgroundColor
	}

	data := struct {
		FullSlideInput
		Style     string
		ColorHint string
	}{
		FullSlideInput: in,
		Style:          fullSlideStyleByPosition[PositionOf(in.Order, in.Total)],
		ColorHint:      colorHint,
	}
	return render("full_slide.tmpl", data)
}
