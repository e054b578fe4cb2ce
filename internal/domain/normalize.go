package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord prepares a headword for lookups and file names:
//   - composes accents to NFC
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses whitespace runs into one space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(norm.NFC.String(word))
	if word == "" {
		return ""
	}
	word = strings.ToLower(word)

	var b strings.Builder
	b.Grow(len(word))
	prevSpace := false
	for _, r := range word {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// FirstLetter returns the first rune of a normalized word as a string,
// or "_" for an empty word.
func FirstLetter(word string) string {
	for _, r := range NormalizeWord(word) {
		return string(r)
	}
	return "_"
}
