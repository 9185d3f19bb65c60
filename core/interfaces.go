// Package core defines the pipeline types and stage interfaces for blurbpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// GenreRef is a top-level catalog genre and its listing URL.
type GenreRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SubGenreRef is a sub-genre discovered from a genre page's navigation.
type SubGenreRef struct {
	Genre string `json:"genre"`
	Slug  string `json:"sub_genre"`
	URL   string `json:"url"`
}

// BookRef points at a single book page found on a sub-genre listing.
// Index is the position in de-duplicated crawl order.
type BookRef struct {
	Genre    string `json:"genre"`
	SubGenre string `json:"sub_genre"`
	URL      string `json:"url"`
	Index    int    `json:"-"`
}

// BookRecord is a book whose description was successfully extracted.
type BookRecord struct {
	Genre    string `json:"genre"`
	SubGenre string `json:"sub_genre"`
	URL      string `json:"url"`
	Blurb    string `json:"blurb"`
}

// TextVariants are the normalized forms of a blurb.
type TextVariants struct {
	Original   string `json:"original"`
	Clean      string `json:"clean"`
	Stemmed    string `json:"stemmed"`
	Lemmatized string `json:"lemmatized"`
}

// Features are scalar statistics derived from the text variants.
type Features struct {
	CharCount           int     `json:"char_count"`
	WordCount           int     `json:"word_count"`
	UniqueWordCount     int     `json:"unique_word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgWordsPerSentence int     `json:"avg_words_per_sentence"`
	SentimentCompound   float64 `json:"sentiment_compound"`
	StopwordCount       int     `json:"stopword_count"`
	StopwordRatio       float64 `json:"stopword_ratio"`
}

// PreparedRecord is a BookRecord with its text variants and features.
type PreparedRecord struct {
	Genre    string `json:"genre"`
	SubGenre string `json:"sub_genre"`
	URL      string `json:"url"`
	TextVariants
	Features
}

// Dataset is the tabular output of a run. Prepared is false when only
// the scraped columns (genre, sub-genre, url, blurb) are populated.
type Dataset struct {
	Rows     []PreparedRecord
	Prepared bool
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor locates catalog structures in a page and pulls out values.
// Every method returns an error wrapping extract.ErrNotFound when the
// expected element is absent.
type Extractor interface {
	SubGenreLinks(html string) ([]string, error)
	LastListingPage(html string) (int, error)
	ListingBookLinks(html string) ([]string, error)
	Description(html string) (string, error)
}

// Normalizer turns a blurb into its text variants.
type Normalizer interface {
	Prepare(blurb string) TextVariants
}

// Renderer converts a dataset into a final output format.
type Renderer interface {
	Render(ds Dataset) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".csv").
	Extension() string
}

// FromBookRecords wraps scraped records in an unprepared dataset.
func FromBookRecords(records []BookRecord) Dataset {
	rows := make([]PreparedRecord, 0, len(records))
	for _, r := range records {
		rows = append(rows, PreparedRecord{
			Genre:        r.Genre,
			SubGenre:     r.SubGenre,
			URL:          r.URL,
			TextVariants: TextVariants{Original: r.Blurb},
		})
	}
	return Dataset{Rows: rows}
}
