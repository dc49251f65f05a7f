package catalog

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
)

var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// lightLumaThreshold is the luma above which a background counts as light.
const lightLumaThreshold = 128

// ValidHex reports whether s is a 6-digit hex color, with or without a leading '#'.
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ParseHex converts a 6-digit hex color into an opaque RGBA value.
func ParseHex(s string) (color.RGBA, error) {
	if !ValidHex(s) {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if s[0] == '#' {
		s = s[1:]
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustParseHex is ParseHex for catalog constants. Invalid input yields black.
func MustParseHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}

// Luma returns 0.2126R + 0.7152G + 0.0722B for a hex color, on a 0-255 scale.
// Invalid input is treated as black.
func Luma(hex string) float64 {
	c := MustParseHex(hex)
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// IsLight reports whether a background color needs dark text.
func IsLight(hex string) bool {
	return Luma(hex) > lightLumaThreshold
}
