package normalize

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lemmatizer maps words to their dictionary base form using an English
// lemma dictionary. Loading the dictionary is expensive; build one and reuse it.
type Lemmatizer struct {
	dict *golem.Lemmatizer
}

// NewLemmatizer loads the English lemma dictionary.
func NewLemmatizer() (*Lemmatizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading english lemma dictionary: %w", err)
	}
	return &Lemmatizer{dict: l}, nil
}

// Lemmatize replaces every whitespace-separated token with its lemma.
// Words missing from the dictionary are kept unchanged.
func (l *Lemmatizer) Lemmatize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = l.Lemma(w)
	}
	return strings.Join(words, " ")
}

// Lemma returns the base form of a single word.
func (l *Lemmatizer) Lemma(word string) string {
	if lemma := l.dict.Lemma(word); lemma != "" {
		return lemma
	}
	return word
}
