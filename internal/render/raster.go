package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type goFonts struct {
	regular *opentype.Font
	bold    *opentype.Font
}

var loadGoFonts = sync.OnceValues(func() (goFonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return goFonts{}, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return goFonts{}, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return goFonts{regular: regular, bold: bold}, nil
})

// rasterizer draws scenes into RGBA images. It holds parsed fonts only and
// is safe for concurrent use; faces are created per call.
type rasterizer struct {
	regular *opentype.Font
	bold    *opentype.Font
	// emoji is nil when no emoji font is configured; emoji lines are then skipped.
	emoji *opentype.Font
}

func newRasterizer(emojiFont []byte) (*rasterizer, error) {
	fonts, err := loadGoFonts()
	if err != nil {
		return nil, err
	}
	r := &rasterizer{regular: fonts.regular, bold: fonts.bold}
	if len(emojiFont) > 0 {
		r.emoji, err = opentype.Parse(emojiFont)
		if err != nil {
			return nil, fmt.Errorf("failed to parse emoji font: %w", err)
		}
	}
	return r, nil
}

type faceKey struct {
	style FontStyle
	size  float64
}

// Rasterize draws s at its output size.
func (r *rasterizer) Rasterize(s Scene) (*image.RGBA, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid scene size %dx%d", s.Width, s.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	sx := float64(s.Width) / canvasSize
	sy := float64(s.Height) / canvasSize
	scale := math.Min(sx, sy)

	fillBackground(img, s.Background)

	for _, c := range s.Circles {
		mask := newCircleMask(c.CX*sx, c.CY*sy, c.R*scale)
		draw.DrawMask(img, mask.rect, image.NewUniform(nrgba(c.Paint)), image.Point{}, mask, mask.rect.Min, draw.Over)
	}

	faces := make(map[faceKey]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, t := range s.Texts {
		face, err := r.face(faces, t.Style, t.Size*scale)
		if err != nil {
			return nil, err
		}
		if face == nil {
			continue
		}

		d := &font.Drawer{Dst: img, Src: image.NewUniform(nrgba(t.Paint)), Face: face}
		width := d.MeasureString(t.Value)
		baseline := toFixed(t.Y * sy)
		if t.Centered {
			m := face.Metrics()
			baseline += (m.Ascent - m.Descent) / 2
		}
		d.Dot = fixed.Point26_6{X: toFixed(t.X*sx) - width/2, Y: baseline}
		d.DrawString(t.Value)
	}

	for _, rect := range s.Rects {
		bounds := image.Rect(
			int(math.Round(rect.X*sx)), int(math.Round(rect.Y*sy)),
			int(math.Round((rect.X+rect.W)*sx)), int(math.Round((rect.Y+rect.H)*sy)),
		)
		draw.Draw(img, bounds, image.NewUniform(nrgba(rect.Paint)), image.Point{}, draw.Over)
	}

	return img, nil
}

func (r *rasterizer) face(cache map[faceKey]font.Face, style FontStyle, size float64) (font.Face, error) {
	key := faceKey{style: style, size: size}
	if f, ok := cache[key]; ok {
		return f, nil
	}

	var src *opentype.Font
	switch style {
	case FontBold:
		src = r.bold
	case FontEmoji:
		src = r.emoji
	default:
		src = r.regular
	}
	if src == nil {
		return nil, nil
	}

	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	cache[key] = f
	return f, nil
}

func fillBackground(img *image.RGBA, bg Background) {
	b := img.Bounds()
	if !bg.Gradient {
		draw.Draw(img, b, image.NewUniform(bg.From), image.Point{}, draw.Src)
		return
	}

	rows := b.Dy() - 1
	if rows < 1 {
		rows = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := float64(y-b.Min.Y) / float64(rows)
		row := image.Rect(b.Min.X, y, b.Max.X, y+1)
		draw.Draw(img, row, image.NewUniform(lerp(bg.From, bg.To, t)), image.Point{}, draw.Src)
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

func nrgba(p Paint) color.NRGBA {
	o := math.Max(0, math.Min(1, p.Opacity))
	return color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: uint8(math.Round(o * 0xff))}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// circleMask is an anti-aliased alpha mask for a circle in pixel space.
type circleMask struct {
	cx, cy, r float64
	rect      image.Rectangle
}

func newCircleMask(cx, cy, r float64) *circleMask {
	return &circleMask{
		cx: cx, cy: cy, r: r,
		rect: image.Rect(
			int(math.Floor(cx-r)), int(math.Floor(cy-r)),
			int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1,
		),
	}
}

func (m *circleMask) ColorModel() color.Model { return color.AlphaModel }

func (m *circleMask) Bounds() image.Rectangle { return m.rect }

func (m *circleMask) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - m.cx
	dy := float64(y) + 0.5 - m.cy
	coverage := m.r - math.Sqrt(dx*dx+dy*dy) + 0.5
	switch {
	case coverage <= 0:
		return color.Alpha{}
	case coverage >= 1:
		return color.Alpha{A: 0xff}
	default:
		return color.Alpha{A: uint8(coverage * 0xff)}
	}
}

// encodePNG encodes img losslessly. Output is deterministic for equal images.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
