// Package completion supplies autocomplete candidates for the pay-to field
// and the text edits needed to apply them.
package completion

import (
	"strings"
	"unicode"
)

// endOfWord holds the runes that close a completion prefix.
const endOfWord = "~!@#$%^&*()_+{}|:\"<>?,./;'[]\\-="

// Provider returns candidate completions for a prefix.
type Provider interface {
	Completions(prefix string) []string
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(prefix string) []string

func (f ProviderFunc) Completions(prefix string) []string {
	return f(prefix)
}

// IsEndOfWord reports whether typing r should close the completion popup.
func IsEndOfWord(r rune) bool {
	return strings.ContainsRune(endOfWord, r)
}

func isWordRune(r rune) bool {
	return !unicode.IsSpace(r) && !IsEndOfWord(r)
}

// WordUnderCursor returns the word ending at cursor, a rune offset into
// text, and the rune offset where it starts.
func WordUnderCursor(text string, cursor int) (string, int) {
	runes := []rune(text)
	cursor = clamp(cursor, 0, len(runes))

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	return string(runes[start:cursor]), start
}

// Insert replaces the whole word around cursor with completion and returns
// the new text with the cursor placed after the inserted text.
func Insert(text string, cursor int, completion string) (string, int) {
	runes := []rune(text)
	cursor = clamp(cursor, 0, len(runes))

	_, start := WordUnderCursor(text, cursor)
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}

	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(completion)
	b.WriteString(string(runes[end:]))

	return b.String(), start + len([]rune(completion))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
