package normalize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
)

// englishStopwords is the base English stopword list, loaded once.
var englishStopwords = sync.OnceValue(func() map[string]struct{} {
	tm := analysis.NewTokenMap()
	if err := tm.LoadBytes(en.EnglishStopWords); err != nil {
		panic(fmt.Sprintf("normalize: loading english stopwords: %v", err))
	}
	set := make(map[string]struct{}, len(tm))
	for w := range tm {
		set[w] = struct{}{}
	}
	return set
})

// Stopwords is an immutable stopword set: the base English list plus
// extra words, minus excluded words.
type Stopwords struct {
	set map[string]struct{}
}

// NewStopwords builds a stopword set. Excluding a word that is not in the
// set is a no-op.
func NewStopwords(extra, exclude []string) *Stopwords {
	base := englishStopwords()
	set := make(map[string]struct{}, len(base)+len(extra))
	for w := range base {
		set[w] = struct{}{}
	}
	for _, w := range extra {
		set[w] = struct{}{}
	}
	for _, w := range exclude {
		delete(set, w)
	}
	return &Stopwords{set: set}
}

// Contains reports whether word is a stopword.
func (s *Stopwords) Contains(word string) bool {
	_, ok := s.set[word]
	return ok
}

// Len returns the number of words in the set.
func (s *Stopwords) Len() int {
	return len(s.set)
}

// Remove drops every stopword token from text and joins the rest with single spaces.
func (s *Stopwords) Remove(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if !s.Contains(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Count returns the number of stopword tokens in text.
func (s *Stopwords) Count(text string) int {
	n := 0
	for _, w := range strings.Fields(text) {
		if s.Contains(w) {
			n++
		}
	}
	return n
}

// RemoveStopwords filters text against the base list ∪ extra − exclude.
func RemoveStopwords(text string, extra, exclude []string) string {
	return NewStopwords(extra, exclude).Remove(text)
}
