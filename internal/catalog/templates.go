// Package catalog holds the static visual catalog used by the slide renderer
// and the structure generator: slide templates keyed by id or background
// color, and style presets carrying natural-language color guidance.
package catalog

import "strings"

// CustomTemplateID is the id of templates synthesized from an arbitrary color.
const CustomTemplateID = "custom"

// Synthesized template colors, chosen by background luminance.
const (
	lightBackgroundText   = "#212529"
	lightBackgroundAccent = "#6c5ce7"
	darkBackgroundText    = "#ffffff"
	darkBackgroundAccent  = "#00d9ff"
)

// Template is a named visual scheme for one slide.
type Template struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	BackgroundColor string `json:"backgroundColor"`
	// GradientColors is an optional top-to-bottom gradient. Empty means solid.
	GradientColors []string `json:"gradientColors,omitempty"`
	TextColor      string   `json:"textColor"`
	AccentColor    string   `json:"accentColor"`
}

// HasGradient reports whether the template paints a gradient background.
func (t Template) HasGradient() bool {
	return len(t.GradientColors) == 2
}

func tpl(id, name, bg, gradFrom, gradTo, text, accent string) Template {
	return Template{
		ID:              id,
		Name:            name,
		BackgroundColor: bg,
		GradientColors:  []string{gradFrom, gradTo},
		TextColor:       text,
		AccentColor:     accent,
	}
}

var templates = []Template{
	// dark professional
	tpl("professional-dark", "Professional dark", "#1e2328", "#2d3436", "#1e2328", "#ffffff", "#74b9ff"),
	tpl("elegant-navy", "Elegant navy", "#2c3e50", "#34495e", "#2c3e50", "#ffffff", "#ecf0f1"),
	tpl("soft-slate", "Soft slate", "#4a5568", "#718096", "#4a5568", "#ffffff", "#e2e8f0"),
	tpl("warm-charcoal", "Warm charcoal", "#3d3d3d", "#4a4a4a", "#3d3d3d", "#ffffff", "#f5b041"),
	tpl("deep-ocean", "Deep ocean", "#1a365d", "#2a4365", "#1a365d", "#ffffff", "#90cdf4"),

	// light professional
	tpl("clean-white", "Clean white", "#ffffff", "#f7fafc", "#ffffff", "#1a202c", "#4299e1"),
	tpl("soft-cream", "Soft cream", "#faf5f0", "#f5ebe0", "#faf5f0", "#3d3d3d", "#d4a373"),
	tpl("light-gray", "Light gray", "#edf2f7", "#e2e8f0", "#edf2f7", "#2d3748", "#667eea"),

	// neon
	tpl("neon-purple", "Neon purple", "#1a0933", "#2d1b4e", "#1a0933", "#ffffff", "#bf00ff"),
	tpl("cyberpunk-pink", "Cyberpunk pink", "#0d0221", "#1a0b2e", "#0d0221", "#ffffff", "#ff006e"),
	tpl("electric-blue", "Electric blue", "#0a1628", "#1a2847", "#0a1628", "#ffffff", "#00d9ff"),
	tpl("synthwave", "Synthwave", "#2b0a3d", "#4a1259", "#2b0a3d", "#ffffff", "#ff00ff"),

	// earth
	tpl("forest-green", "Forest green", "#1b3a2f", "#2d5447", "#1b3a2f", "#ffffff", "#7fdb8e"),
	tpl("earth-brown", "Earth brown", "#4a3428", "#5c4637", "#4a3428", "#ffffff", "#d4a373"),
	tpl("ocean-teal", "Ocean teal", "#0d3d56", "#1a5570", "#0d3d56", "#ffffff", "#4dd0e1"),
	tpl("sunset-orange", "Sunset orange", "#5a2a0a", "#7a3c14", "#5a2a0a", "#ffffff", "#ffa726"),

	// luxury
	tpl("royal-purple", "Royal purple", "#1a0a2e", "#2d1650", "#1a0a2e", "#ffffff", "#e0b0ff"),
	tpl("luxury-black", "Luxury black", "#0a0a0a", "#1a1a1a", "#0a0a0a", "#ffffff", "#ffd700"),
	tpl("champagne-gold", "Champagne gold", "#2a2315", "#3d3420", "#2a2315", "#ffffff", "#d4af37"),
	tpl("pearl-white", "Pearl white", "#fdfefe", "#f8f9fa", "#fdfefe", "#2c3e50", "#b8b8b8"),

	// bright
	tpl("vibrant-red", "Vibrant red", "#b71c1c", "#c62828", "#b71c1c", "#ffffff", "#ffcdd2"),
	tpl("sunny-yellow", "Sunny yellow", "#f9a825", "#fbc02d", "#f9a825", "#1a1a1a", "#fff59d"),
	tpl("energetic-orange", "Energetic orange", "#e65100", "#ef6c00", "#e65100", "#ffffff", "#ffcc80"),
	tpl("lime-green", "Lime green", "#689f38", "#7cb342", "#689f38", "#ffffff", "#dcedc8"),

	// modern gradients
	tpl("purple-blue", "Purple to blue", "#667eea", "#667eea", "#764ba2", "#ffffff", "#c3cffe"),
	tpl("pink-orange", "Pink to orange", "#f093fb", "#f093fb", "#f5576c", "#ffffff", "#ffd6e7"),
	tpl("blue-cyan", "Blue to cyan", "#4facfe", "#4facfe", "#00f2fe", "#1a1a1a", "#e0f7ff"),

	// pastel
	tpl("pastel-pink", "Pastel pink", "#ffe5ec", "#ffc2d1", "#ffe5ec", "#3d3d3d", "#ff69b4"),
	tpl("pastel-blue", "Pastel blue", "#e8f4f8", "#d1ecf1", "#e8f4f8", "#2c3e50", "#4299e1"),
	tpl("pastel-mint", "Pastel mint", "#e8f5e9", "#c8e6c9", "#e8f5e9", "#2d3d2d", "#4caf50"),
}

// Templates returns a copy of the full template catalog in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	for i, t := range templates {
		t.GradientColors = append([]string(nil), t.GradientColors...)
		out[i] = t
	}
	return out
}

// DefaultTemplate is the template used when nothing else selects one.
func DefaultTemplate() Template {
	return templates[0]
}

// TemplateByID looks up a catalog template by id.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// TemplateByColor returns the catalog template whose background matches hex
// (case-insensitive), or a synthesized solid template for that color. It is
// total over valid 6-digit colors.
func TemplateByColor(hex string) Template {
	for _, t := range templates {
		if strings.EqualFold(t.BackgroundColor, hex) {
			return t
		}
	}

	custom := Template{
		ID:              CustomTemplateID,
		Name:            "Custom",
		BackgroundColor: hex,
		TextColor:       darkBackgroundText,
		AccentColor:     darkBackgroundAccent,
	}
	if IsLight(hex) {
		custom.TextColor = lightBackgroundText
		custom.AccentColor = lightBackgroundAccent
	}
	return custom
}

// Resolve picks the template for a slide. An explicit id wins, falling back to
// the default when the id is unknown. Without one, the slide color selects the
// template; with neither, the default is used.
func Resolve(templateID, backgroundColor string) Template {
	if templateID != "" {
		if t, ok := TemplateByID(templateID); ok {
			return t
		}
		return DefaultTemplate()
	}
	if ValidHex(backgroundColor) {
		return TemplateByColor(backgroundColor)
	}
	return DefaultTemplate()
}
