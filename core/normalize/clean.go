// Package normalize implements the text preparation pipeline applied to
// blurbs: cleaning, tokenizing, stemming, lemmatizing and stopword removal.
// Every function here is pure and deterministic.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Matches anything that is not a lowercase letter, digit, whitespace or apostrophe.
var disallowed = regexp.MustCompile(`[^a-z0-9\s']`)

// Clean lowercases s, decomposes it (NFKD), drops non-ASCII remnants
// and removes every character outside [a-z0-9\s'].
// "Café — Noir!" -> "cafe  noir".
func Clean(s string) string {
	s = strings.ToLower(s)

	// Decompose accented characters so the base letter survives.
	s = norm.NFKD.String(s)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	return disallowed.ReplaceAllString(s, "")
}
