package render

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text into lines of at most width runes by greedy line fill.
// A word longer than width gets a line of its own and is never broken.
// Runs of whitespace collapse to single spaces.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width < 1 {
		width = 1
	}

	lines := make([]string, 0, len(words))
	current := words[0]
	currentLen := utf8.RuneCountInString(current)

	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if currentLen+1+wordLen > width {
			lines = append(lines, current)
			current, currentLen = word, wordLen
			continue
		}
		current += " " + word
		currentLen += 1 + wordLen
	}
	return append(lines, current)
}
