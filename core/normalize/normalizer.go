package normalize

import (
	"github.com/gaurav-prasanna/blurbpipe/core"
)

// Options tunes the stopword set used by a Pipeline.
type Options struct {
	ExtraStopwords   []string
	ExcludeStopwords []string
}

// Pipeline implements core.Normalizer.
// clean → tokenize runs once; the stemmed, lemmatized and clean variants
// are then derived independently from that tokenized base, each followed
// by stopword removal.
type Pipeline struct {
	lemmatizer *Lemmatizer
	stopwords  *Stopwords
}

// New builds a Pipeline, loading the lemma dictionary.
func New(opts Options) (*Pipeline, error) {
	lemmatizer, err := NewLemmatizer()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		lemmatizer: lemmatizer,
		stopwords:  NewStopwords(opts.ExtraStopwords, opts.ExcludeStopwords),
	}, nil
}

// Stopwords returns the stopword set in use.
func (p *Pipeline) Stopwords() *Stopwords {
	return p.stopwords
}

// Base returns the cleaned, tokenized form of blurb, before stopword removal.
func (p *Pipeline) Base(blurb string) string {
	return Tokenize(Clean(blurb))
}

// Prepare produces the text variants for a blurb.
func (p *Pipeline) Prepare(blurb string) core.TextVariants {
	base := p.Base(blurb)
	return core.TextVariants{
		Original:   blurb,
		Clean:      p.stopwords.Remove(base),
		Stemmed:    p.stopwords.Remove(Stem(base)),
		Lemmatized: p.stopwords.Remove(p.lemmatizer.Lemmatize(base)),
	}
}
