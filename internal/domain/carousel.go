package domain

import (
	"fmt"
	"strings"
)

// Field limits enforced on generated copy.
const (
	MaxTitleLength   = 80
	MaxContentLength = 200
	MinSlideCount    = 1
	MaxSlideCount    = 10
)

// SlideSpec is the content of one carousel slide.
type SlideSpec struct {
	Order           int    `json:"order"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	VisualPrompt    string `json:"visualPrompt"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Emoji           string `json:"emoji,omitempty"`
}

// CarouselStructure is the full script of a carousel.
type CarouselStructure struct {
	Topic          string      `json:"topic"`
	TargetAudience string      `json:"targetAudience"`
	Hook           string      `json:"hook"`
	Slides         []SlideSpec `json:"slides"`
	CTA            string      `json:"cta"`
}

// SlideContext is the carousel-level context used when regenerating one slide.
type SlideContext struct {
	Topic          string `json:"topic"`
	TargetAudience string `json:"targetAudience"`
}

// NormalizeOrder renumbers slides 1..N in slice order, whatever order values
// they carried before.
func (c *CarouselStructure) NormalizeOrder() {
	for i := range c.Slides {
		c.Slides[i].Order = i + 1
	}
}

// CallToAction returns the fixed call-to-action sentence for a code word and lead magnet.
func CallToAction(codeWord, leadMagnet string) string {
	return fmt.Sprintf("Write «%s» in direct messages and get %s for free!", codeWord, leadMagnet)
}

// EnforceCodeWord guarantees that both the last slide and the top-level CTA
// mention codeWord (case-insensitive). The last slide is augmented by appending
// the call-to-action sentence to its content; the CTA field is replaced outright.
// It reports whether the structure was changed.
func (c *CarouselStructure) EnforceCodeWord(codeWord, leadMagnet string) bool {
	changed := false
	cta := CallToAction(codeWord, leadMagnet)

	if n := len(c.Slides); n > 0 {
		last := &c.Slides[n-1]
		if !ContainsFold(last.Title, codeWord) && !ContainsFold(last.Content, codeWord) {
			if strings.TrimSpace(last.Content) == "" {
				last.Content = cta
			} else {
				last.Content = last.Content + "\n\n" + cta
			}
			changed = true
		}
	}

	if !ContainsFold(c.CTA, codeWord) {
		c.CTA = cta
		changed = true
	}

	return changed
}

// HasCodeWord reports whether the structure satisfies the code-word invariant.
func (c *CarouselStructure) HasCodeWord(codeWord string) bool {
	if len(c.Slides) == 0 || !ContainsFold(c.CTA, codeWord) {
		return false
	}
	last := c.Slides[len(c.Slides)-1]
	return ContainsFold(last.Title, codeWord) || ContainsFold(last.Content, codeWord)
}

// LimitViolations lists slides whose title or content exceed the copy limits.
// Lengths are counted in runes.
func (c *CarouselStructure) LimitViolations() []string {
	var out []string
	for _, s := range c.Slides {
		if n := len([]rune(s.Title)); n > MaxTitleLength {
			out = append(out, fmt.Sprintf("slide %d title has %d chars (max %d)", s.Order, n, MaxTitleLength))
		}
		if n := len([]rune(s.Content)); n > MaxContentLength {
			out = append(out, fmt.Sprintf("slide %d content has %d chars (max %d)", s.Order, n, MaxContentLength))
		}
	}
	return out
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
