// Package prompts builds the natural-language instructions sent to the
// language model and the image-generation model. Every builder is a pure
// function of its input.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("prompts").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"))

// render executes the named template and trims surrounding whitespace.
func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// mustRender is used for templates that take no input and cannot fail.
func mustRender(name string) string {
	out, err := render(name, nil)
	if err != nil {
		panic(err)
	}
	return out
}

var (
	marketSystem    = mustRender("market_system.tmpl")
	referenceSystem = mustRender("reference_system.tmpl")
	referenceUser   = mustRender("reference_user.tmpl")
	structureSystem = mustRender("structure_system.tmpl")
)

// MarketSystem is the system instruction for market analysis.
func MarketSystem() string { return marketSystem }

// MarketUser is the user message carrying the business theme.
func MarketUser(theme string) (string, error) {
	return render("market_user.tmpl", struct{ Theme string }{theme})
}

// ReferenceSystem is the system instruction for reference image analysis.
func ReferenceSystem() string { return referenceSystem }

// ReferenceUser is the text part sent alongside the reference image.
func ReferenceUser() string { return referenceUser }

// StructureSystem is the system instruction for carousel structure generation.
func StructureSystem() string { return structureSystem }

// StructureInput is the data embedded in the structure request.
type StructureInput struct {
	SlideCount      int
	Theme           string
	LeadMagnet      string
	CodeWord        string
	MarketReport    string
	ReferenceReport string
	StyleHint       string
}

// StructureUser builds the user message for structure generation.
func StructureUser(in StructureInput) (string, error) {
	return render("structure_user.tmpl", in)
}

// RegenerateInput is the data embedded in a slide regeneration request.
type RegenerateInput struct {
	Title          string
	Content        string
	Topic          string
	TargetAudience string
}

// Regenerate builds the single user message for slide regeneration.
func Regenerate(in RegenerateInput) (string, error) {
	return render("regenerate.tmpl", in)
}
