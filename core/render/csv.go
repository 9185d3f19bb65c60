// Package render — CSV renderer.
// One header row followed by one row per book.
package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gaurav-prasanna/blurbpipe/core"
)

// BookColumns are the scraped columns, written for every dataset.
var BookColumns = []string{"genre", "sub_genre", "url", "blurb"}

// PreparedColumns are written instead of BookColumns for prepared datasets.
var PreparedColumns = []string{
	"genre", "sub_genre", "url",
	"original", "clean", "stemmed", "lemmatized",
	"char_count", "word_count", "unique_word_count", "sentence_count",
	"avg_words_per_sentence", "sentiment_compound", "stopword_count", "stopword_ratio",
}

// CSVRenderer produces comma-separated output.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render writes the header and rows.
func (r *CSVRenderer) Render(ds core.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := BookColumns
	if ds.Prepared {
		header = PreparedColumns
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range ds.Rows {
		record := []string{row.Genre, row.SubGenre, row.URL, row.Original}
		if ds.Prepared {
			record = append(record,
				row.Clean, row.Stemmed, row.Lemmatized,
				strconv.Itoa(row.CharCount),
				strconv.Itoa(row.WordCount),
				strconv.Itoa(row.UniqueWordCount),
				strconv.Itoa(row.SentenceCount),
				strconv.Itoa(row.AvgWordsPerSentence),
				strconv.FormatFloat(row.SentimentCompound, 'f', -1, 64),
				strconv.Itoa(row.StopwordCount),
				strconv.FormatFloat(row.StopwordRatio, 'f', -1, 64),
			)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for CSV output.
func (r *CSVRenderer) Extension() string {
	return ".csv"
}
