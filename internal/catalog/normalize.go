package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize title-cases s and trims surrounding whitespace, so " SCIENCE "
// and "science" both become "Science".
func Normalize(s string) string {
	// cases.Caser keeps state between calls; build one per call so this stays
	// safe for concurrent use.
	return strings.TrimSpace(cases.Title(language.Und).String(s))
}

// NormalizeDifficulty applies Normalize to a difficulty label.
func NormalizeDifficulty(s string) Difficulty {
	return Difficulty(Normalize(s))
}
