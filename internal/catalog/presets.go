package catalog

// DefaultStyleHint is the color guidance used when no preset is selected.
const DefaultStyleHint = "Use calm professional colors that suit the niche. Vary the background color between slides."

// Preset is a named palette with guidance for the structure generator.
type Preset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	PromptHint  string   `json:"-"`
}

var presets = []Preset{
	{
		ID:          "pastel",
		Name:        "Pastel",
		Description: "Soft gentle colors",
		Colors:      []string{"#FFE5EC", "#E8F4F8", "#FFF3E0", "#E8F5E9", "#F3E5F5"},
		PromptHint: "Use soft pastel colors: gentle pink (#FFE5EC), light blue (#E8F4F8), peach (#FFE5D9), " +
			"mint (#E8F5E9), lavender (#F3E5F5). Alternate colors between slides for variety.",
	},
	{
		ID:          "dark-professional",
		Name:        "Dark professional",
		Description: "Strict dark tones",
		Colors:      []string{"#1E2328", "#2C3E50", "#1A365D", "#3D3D3D", "#2D3436"},
		PromptHint: "Use dark professional colors: dark gray (#1E2328), dark navy (#2C3E50), deep blue (#1A365D), " +
			"charcoal (#3D3D3D). These colors create a serious business look.",
	},
	{
		ID:          "bright-contrast",
		Name:        "Bright contrast",
		Description: "Saturated bright colors",
		Colors:      []string{"#FF6B6B", "#4ECDC4", "#FFE66D", "#95E1D3", "#FF8B94"},
		PromptHint: "Use bright saturated colors: coral (#FF6B6B), turquoise (#4ECDC4), sunny yellow (#FFE66D), " +
			"mint green (#95E1D3), pink (#FF8B94). Alternate them for a dynamic look.",
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "Black and white palette",
		Colors:      []string{"#FFFFFF", "#F5F5F5", "#212121", "#424242", "#E0E0E0"},
		PromptHint: "Use a minimalist black and white palette: white (#FFFFFF), light gray (#F5F5F5), " +
			"dark gray (#424242), black (#212121). Simplicity and elegance.",
	},
	{
		ID:          "gradient-modern",
		Name:        "Modern gradients",
		Description: "Trendy color transitions",
		Colors:      []string{"#667EEA", "#764BA2", "#F093FB", "#F5576C", "#4FACFE"},
		PromptHint: "Use modern gradient colors: purple-blue (#667EEA), violet (#764BA2), pink (#F093FB), " +
			"coral (#F5576C), sky blue (#4FACFE). Each slide gets one saturated color.",
	},
}

// Presets returns the style presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByID looks up a preset by id.
func PresetByID(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// StyleHint returns the prompt guidance for a preset id, or DefaultStyleHint
// when the id is empty or unknown.
func StyleHint(presetID string) string {
	if p, ok := PresetByID(presetID); ok {
		return p.PromptHint
	}
	return DefaultStyleHint
}
