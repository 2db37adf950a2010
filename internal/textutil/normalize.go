package textutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NFKC returns the compatibility-composed form of s. Fullwidth Latin letters
// and digits become ASCII, ligatures are expanded.
func NFKC(s string) string {
	return norm.NFKC.String(s)
}

// Fold returns the NFKC form of s lower-cased with language-neutral rules.
func Fold(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Lower(language.Und).String(norm.NFKC.String(s))
}

// CoreRunes returns the comparable characters of s: its letters and digits
// after folding. Whitespace and punctuation are dropped.
func CoreRunes(s string) []rune {
	folded := Fold(s)
	out := make([]rune, 0, len(folded))
	for _, r := range folded {
		if IsCore(r) {
			out = append(out, r)
		}
	}
	return out
}
