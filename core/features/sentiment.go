package features

import (
	"strings"

	"github.com/jonreiter/govader"
)

// SentimentScorer scores polarity with the VADER lexicon.
type SentimentScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewSentimentScorer creates a SentimentScorer.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the normalized compound score in [-1, 1].
func (s *SentimentScorer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return s.analyzer.PolarityScores(text).Compound
}
