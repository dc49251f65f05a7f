package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOrder(t *testing.T) {
	t.Parallel()

	c := CarouselStructure{Slides: []SlideSpec{{Order: 7}, {Order: 7}, {Order: 0}, {Order: -2}}}
	c.NormalizeOrder()

	for i, s := range c.Slides {
		assert.Equal(t, i+1, s.Order)
	}
}

func TestEnforceCodeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		structure     CarouselStructure
		wantChanged   bool
		wantLastTitle string
		wantContent   string
		wantCTA       string
	}{
		{
			name: "already_present_everywhere",
			structure: CarouselStructure{
				Slides: []SlideSpec{{Title: "Hook"}, {Title: "Want it?", Content: "Write guide in DM"}},
				CTA:    "Send GUIDE now",
			},
			wantChanged:   false,
			wantLastTitle: "Want it?",
			wantContent:   "Write guide in DM",
			wantCTA:       "Send GUIDE now",
		},
		{
			name: "code_word_in_title_only",
			structure: CarouselStructure{
				Slides: []SlideSpec{{Title: "Send GUIDE", Content: "and get the checklist"}},
				CTA:    "guide",
			},
			wantChanged:   false,
			wantLastTitle: "Send GUIDE",
			wantContent:   "and get the checklist",
			wantCTA:       "guide",
		},
		{
			name: "missing_on_slide_appends",
			structure: CarouselStructure{
				Slides: []SlideSpec{{Title: "Hook"}, {Title: "Final", Content: "Thanks for reading"}},
				CTA:    "Write GUIDE",
			},
			wantChanged:   true,
			wantLastTitle: "Final",
			wantContent:   "Thanks for reading\n\n" + CallToAction("GUIDE", "the starter kit"),
			wantCTA:       "Write GUIDE",
		},
		{
			name: "missing_cta_overwrites",
			structure: CarouselStructure{
				Slides: []SlideSpec{{Title: "Final", Content: "Write GUIDE"}},
				CTA:    "Follow for more",
			},
			wantChanged:   true,
			wantLastTitle: "Final",
			wantContent:   "Write GUIDE",
			wantCTA:       CallToAction("GUIDE", "the starter kit"),
		},
		{
			name: "empty_cta_and_content",
			structure: CarouselStructure{
				Slides: []SlideSpec{{Title: "Final"}},
			},
			wantChanged:   true,
			wantLastTitle: "Final",
			wantContent:   CallToAction("GUIDE", "the starter kit"),
			wantCTA:       CallToAction("GUIDE", "the starter kit"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.structure
			changed := c.EnforceCodeWord("GUIDE", "the starter kit")

			assert.Equal(t, tc.wantChanged, changed)
			last := c.Slides[len(c.Slides)-1]
			assert.Equal(t, tc.wantLastTitle, last.Title)
			assert.Equal(t, tc.wantContent, last.Content)
			assert.Equal(t, tc.wantCTA, c.CTA)
			assert.True(t, c.HasCodeWord("guide"))
		})
	}
}

func TestEnforceCodeWordCyrillic(t *testing.T) {
	t.Parallel()

	c := CarouselStructure{
		Slides: []SlideSpec{{Title: "Итог", Content: "Напиши «гайд» в директ"}},
		CTA:    "Пиши ГАЙД",
	}
	assert.False(t, c.EnforceCodeWord("ГАЙД", "чек-лист"))
	assert.True(t, c.HasCodeWord("Гайд"))
}

func TestLimitViolations(t *testing.T) {
	t.Parallel()

	long := make([]rune, MaxContentLength+1)
	for i := range long {
		long[i] = 'я'
	}
	c := CarouselStructure{Slides: []SlideSpec{
		{Order: 1, Title: "ok", Content: "ok"},
		{Order: 2, Title: "ok", Content: string(long)},
	}}

	violations := c.LimitViolations()
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "slide 2 content")
}

func TestParseRenderMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseRenderMode("", "")
	require.NoError(t, err)
	assert.False(t, mode.IsAI())
	assert.Empty(t, mode.TemplateID())

	mode, err = ParseRenderMode(VisualMethodTemplate, " luxury-black ")
	require.NoError(t, err)
	assert.Equal(t, "luxury-black", mode.TemplateID())

	mode, err = ParseRenderMode(VisualMethodAI, "ignored")
	require.NoError(t, err)
	assert.True(t, mode.IsAI())

	_, err = ParseRenderMode(VisualMethodComfyUI, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseRenderMode("sketch", "")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSlideFileName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "slide-3.png", SlideFileName(3))
}
