package normalize

import (
	"strings"

	"github.com/blevesearch/segment"
)

// Tokenize splits s on Unicode word boundaries (UAX #29) and returns the
// tokens joined by single spaces. Adjacent word segments form one token;
// whitespace and punctuation segments separate tokens and are dropped, so
// contractions like "don't" stay whole while quotes and trailing
// apostrophes fall away.
func Tokenize(s string) string {
	return strings.Join(Tokens(s), " ")
}

// Tokens is Tokenize without the final join.
func Tokens(s string) []string {
	seg := segment.NewWordSegmenterDirect([]byte(s))

	var tokens []string
	var cur []byte
	for seg.Segment() {
		if seg.Type() == segment.None {
			if len(cur) > 0 {
				tokens = append(tokens, string(cur))
				cur = cur[:0]
			}
			continue
		}
		cur = append(cur, seg.Bytes()...)
	}
	if len(cur) > 0 {
		tokens = append(tokens, string(cur))
	}
	return tokens
}
