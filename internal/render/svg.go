package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strconv"
)

const svgFontFamily = "Arial, sans-serif"

// SVG serializes the scene as a standalone SVG document. All text is escaped.
func (s Scene) SVG() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`,
		s.Width, s.Height, canvasSize, canvasSize)
	b.WriteByte('\n')

	fill := hexColor(s.Background.From)
	if s.Background.Gradient {
		fmt.Fprintf(&b, `<defs><linearGradient id="bg-gradient" x1="0%%" y1="0%%" x2="0%%" y2="100%%">`+
			`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient></defs>`+"\n",
			hexColor(s.Background.From), hexColor(s.Background.To))
		fill = "url(#bg-gradient)"
	}
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", fill)

	for _, c := range s.Circles {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"%s/>`+"\n",
			num(c.CX), num(c.CY), num(c.R), hexColor(c.Paint.Color), opacityAttr(c.Paint.Opacity))
	}

	for _, t := range s.Texts {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle"`, num(t.X), num(t.Y))
		if t.Centered {
			b.WriteString(` dominant-baseline="central"`)
		}
		if t.Style != FontEmoji {
			fmt.Fprintf(&b, ` font-family="%s"`, svgFontFamily)
		}
		fmt.Fprintf(&b, ` font-size="%s"`, num(t.Size))
		if t.Style == FontBold {
			b.WriteString(` font-weight="bold"`)
		}
		fmt.Fprintf(&b, ` fill="%s"%s>`, hexColor(t.Paint.Color), opacityAttr(t.Paint.Opacity))
		// Writes to a bytes.Buffer cannot fail.
		_ = xml.EscapeText(&b, []byte(t.Value))
		b.WriteString("</text>\n")
	}

	for _, r := range s.Rects {
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`+"\n",
			num(r.X), num(r.Y), num(r.W), num(r.H), hexColor(r.Paint.Color), opacityAttr(r.Paint.Opacity))
	}

	b.WriteString("</svg>\n")
	return b.Bytes()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func opacityAttr(o float64) string {
	if o >= 1 {
		return ""
	}
	return ` fill-opacity="` + num(o) + `"`
}
