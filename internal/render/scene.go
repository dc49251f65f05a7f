package render

import (
	"image/color"
	"strconv"

	"github.com/phrazzld/carousel-api/internal/catalog"
	"github.com/phrazzld/carousel-api/internal/domain"
)

// Scenes are laid out on a square reference canvas and scaled to the
// output size when drawn.
const canvasSize = 1080

// Wrap widths in runes.
const (
	titleWrapWidth   = 25
	contentWrapWidth = 40
)

// Text layout on the reference canvas.
const (
	centerX = canvasSize / 2

	emojiY    = 380
	emojiSize = 80

	titleY          = 420
	titleYWithEmoji = 480
	titleLineHeight = 70
	titleSize       = 56

	contentGap        = 50
	contentLineHeight = 45
	contentSize       = 32
	contentOpacity    = 0.85

	badgeX, badgeY, badgeR = 80, 80, 35
	badgeTextSize          = 28
	badgeOpacity           = 0.15
)

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// decorations are the faint circles behind every slide.
var decorations = []Circle{
	{CX: 200, CY: 150, R: 100, Paint: Paint{Color: white, Opacity: 0.03}},
	{CX: 880, CY: 300, R: 150, Paint: Paint{Color: white, Opacity: 0.02}},
	{CX: 150, CY: 800, R: 120, Paint: Paint{Color: white, Opacity: 0.025}},
	{CX: 900, CY: 900, R: 80, Paint: Paint{Color: white, Opacity: 0.02}},
}

// Paint is a flat color with opacity in [0, 1].
type Paint struct {
	Color   color.RGBA
	Opacity float64
}

// Background fills the canvas with From, or a top-to-bottom gradient from
// From to To when Gradient is set.
type Background struct {
	From     color.RGBA
	To       color.RGBA
	Gradient bool
}

// Circle is a filled circle.
type Circle struct {
	CX, CY, R float64
	Paint     Paint
}

// Rect is a filled axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
	Paint      Paint
}

// FontStyle selects the face used to draw a text line.
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
	FontEmoji
)

// Text is one horizontally centered line. Y is the baseline, or the vertical
// center when Centered is set.
type Text struct {
	X, Y     float64
	Value    string
	Size     float64
	Style    FontStyle
	Paint    Paint
	Centered bool
}

// Scene is the vector description of one template-mode slide. Coordinates
// are in reference canvas units; Width and Height are the output pixels.
type Scene struct {
	Width, Height int
	Background    Background
	Circles       []Circle
	Rects         []Rect
	Texts         []Text
}

// BuildScene lays out spec with the colors of tpl.
func BuildScene(spec domain.SlideSpec, tpl catalog.Template, width, height int) Scene {
	textColor := catalog.MustParseHex(tpl.TextColor)

	bg := Background{From: catalog.MustParseHex(tpl.BackgroundColor)}
	if tpl.HasGradient() {
		bg = Background{
			From:     catalog.MustParseHex(tpl.GradientColors[0]),
			To:       catalog.MustParseHex(tpl.GradientColors[1]),
			Gradient: true,
		}
	}

	s := Scene{
		Width:      width,
		Height:     height,
		Background: bg,
		Circles:    append([]Circle(nil), decorations...),
	}

	s.Circles = append(s.Circles, Circle{CX: badgeX, CY: badgeY, R: badgeR, Paint: Paint{Color: white, Opacity: badgeOpacity}})
	s.Texts = append(s.Texts, Text{
		X:        badgeX,
		Y:        badgeY,
		Value:    strconv.Itoa(spec.Order),
		Size:     badgeTextSize,
		Style:    FontBold,
		Paint:    Paint{Color: textColor, Opacity: 1},
		Centered: true,
	})

	y := float64(titleY)
	if spec.Emoji != "" {
		y = titleYWithEmoji
		s.Texts = append(s.Texts, Text{
			X:     centerX,
			Y:     emojiY,
			Value: spec.Emoji,
			Size:  emojiSize,
			Style: FontEmoji,
			Paint: Paint{Color: textColor, Opacity: 1},
		})
	}

	titleLines := Wrap(spec.Title, titleWrapWidth)
	for i, line := range titleLines {
		s.Texts = append(s.Texts, Text{
			X:     centerX,
			Y:     y + float64(i*titleLineHeight),
			Value: line,
			Size:  titleSize,
			Style: FontBold,
			Paint: Paint{Color: textColor, Opacity: 1},
		})
	}

	contentY := y + float64(len(titleLines)*titleLineHeight+contentGap)
	for i, line := range Wrap(spec.Content, contentWrapWidth) {
		s.Texts = append(s.Texts, Text{
			X:     centerX,
			Y:     contentY + float64(i*contentLineHeight),
			Value: line,
			Size:  contentSize,
			Style: FontRegular,
			Paint: Paint{Color: textColor, Opacity: contentOpacity},
		})
	}

	s.Rects = append(s.Rects, Rect{
		X: 500, Y: 1000, W: 80, H: 4,
		Paint: Paint{Color: catalog.MustParseHex(tpl.AccentColor), Opacity: 1},
	})
	return s
}
