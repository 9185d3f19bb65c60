package normalize

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// Stem maps every whitespace-separated token to its Porter stem.
func Stem(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = porterstemmer.StemString(w)
	}
	return strings.Join(words, " ")
}
