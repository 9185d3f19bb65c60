// Package features derives scalar statistics from a blurb's text variants:
// character, word, unique word and sentence counts, sentiment polarity and
// stopword usage.
package features

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/core/normalize"
)

// CharCount returns the number of characters (runes) in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// WordCount returns the number of whitespace-separated words, repeats included.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// UniqueWordCount returns the number of distinct whitespace-separated words.
func UniqueWordCount(s string) int {
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		seen[w] = struct{}{}
	}
	return len(seen)
}

// AvgWordsPerSentence returns words/sentences rounded half to even.
// It returns 0 when sentences is zero.
func AvgWordsPerSentence(words, sentences int) int {
	if sentences == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(words) / float64(sentences)))
}

// StopwordRatio returns stopwords/words rounded to two decimals.
// It returns 0 when words is zero.
func StopwordRatio(stopwords, words int) float64 {
	if words == 0 {
		return 0
	}
	return math.Round(float64(stopwords)/float64(words)*100) / 100
}

// Builder computes Features for prepared text.
type Builder struct {
	sentences *SentenceCounter
	sentiment *SentimentScorer
	stopwords *normalize.Stopwords
}

// NewBuilder creates a Builder counting stopwords against sw.
func NewBuilder(sw *normalize.Stopwords) (*Builder, error) {
	sentences, err := NewSentenceCounter()
	if err != nil {
		return nil, err
	}
	return &Builder{
		sentences: sentences,
		sentiment: NewSentimentScorer(),
		stopwords: sw,
	}, nil
}

// Build derives features from v. Word-level counts use the lemmatized
// variant; sentence count and sentiment use the original text; stopwords
// are counted on the cleaned, tokenized original before removal.
func (b *Builder) Build(v core.TextVariants) core.Features {
	f := core.Features{
		CharCount:         CharCount(v.Lemmatized),
		WordCount:         WordCount(v.Lemmatized),
		UniqueWordCount:   UniqueWordCount(v.Lemmatized),
		SentenceCount:     b.sentences.Count(v.Original),
		SentimentCompound: b.sentiment.Compound(v.Original),
		StopwordCount:     b.stopwords.Count(normalize.Tokenize(normalize.Clean(v.Original))),
	}
	f.AvgWordsPerSentence = AvgWordsPerSentence(f.WordCount, f.SentenceCount)
	f.StopwordRatio = StopwordRatio(f.StopwordCount, f.WordCount)
	return f
}

// PrepareAll runs every record through n and b, preserving order.
func (b *Builder) PrepareAll(n core.Normalizer, records []core.BookRecord) []core.PreparedRecord {
	out := make([]core.PreparedRecord, 0, len(records))
	for _, r := range records {
		v := n.Prepare(r.Blurb)
		out = append(out, core.PreparedRecord{
			Genre:        r.Genre,
			SubGenre:     r.SubGenre,
			URL:          r.URL,
			TextVariants: v,
			Features:     b.Build(v),
		})
	}
	return out
}
