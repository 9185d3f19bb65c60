// Package render — JSON renderer.
// Writes the dataset as an indented JSON array, one object per book.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/blurbpipe/core"
)

// JSONRenderer produces a JSON array of records.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals prepared rows in full, or only the scraped fields
// (genre, sub_genre, url, blurb) when the dataset is not prepared.
func (r *JSONRenderer) Render(ds core.Dataset) ([]byte, error) {
	var v any = ds.Rows
	if !ds.Prepared {
		v = bookRecords(ds)
	}
	if ds.Rows == nil {
		v = []struct{}{}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func bookRecords(ds core.Dataset) []core.BookRecord {
	out := make([]core.BookRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		out = append(out, core.BookRecord{
			Genre:    row.Genre,
			SubGenre: row.SubGenre,
			URL:      row.URL,
			Blurb:    row.Original,
		})
	}
	return out
}
