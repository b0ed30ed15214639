package units

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize converts a user-typed token to its comparison key: uppercase,
// with every whitespace rune removed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(token string) string {
	// A Caser is stateful, so one is built per call. The root locale keeps
	// folding independent of the user's language (no Turkish dotted I).
	folded := cases.Upper(language.Und).String(token)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
}

// Trim strips surrounding whitespace only. Case-sensitive units compare
// against the trimmed token.
func Trim(token string) string {
	return strings.TrimSpace(token)
}
