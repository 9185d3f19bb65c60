package features

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceCounter counts sentences with a punkt-style English tokenizer,
// so abbreviations like "Dr." do not end a sentence.
type SentenceCounter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSentenceCounter loads the English sentence model.
func NewSentenceCounter() (*SentenceCounter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading english sentence model: %w", err)
	}
	return &SentenceCounter{tokenizer: tokenizer}, nil
}

// Count returns the number of non-empty sentences in s.
func (c *SentenceCounter) Count(s string) int {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	n := 0
	for _, sent := range c.tokenizer.Tokenize(s) {
		if strings.TrimSpace(sent.Text) != "" {
			n++
		}
	}
	return n
}
