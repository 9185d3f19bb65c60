// Package output — dataset reader.
// Reads datasets written by the json and csv renderers back into memory.
package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/blurbpipe/core"
)

// ErrUnsupportedFormat is returned for files that are neither .json nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// ReadBookRecords loads scraped records from a JSON or CSV dataset.
// Prepared datasets are accepted too: their "original" column is the blurb.
func ReadBookRecords(path string) ([]core.BookRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []core.BookRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		records, err = decodeJSON(f)
	case ".csv":
		records, err = decodeCSV(f)
	default:
		return nil, fmt.Errorf("reading %s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// ReadPrepared loads a prepared JSON dataset, as written by
// "scrape --prepare" or "prepare".
func ReadPrepared(path string) (core.Dataset, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return core.Dataset{}, fmt.Errorf("reading %s: %w", path, ErrUnsupportedFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var rows []core.PreparedRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return core.Dataset{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return core.Dataset{Rows: rows, Prepared: true}, nil
}

// jsonRow accepts both the scraped (blurb) and prepared (original) shapes.
type jsonRow struct {
	core.BookRecord
	Original string `json:"original"`
}

func decodeJSON(r io.Reader) ([]core.BookRecord, error) {
	var rows []jsonRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	out := make([]core.BookRecord, 0, len(rows))
	for _, row := range rows {
		rec := row.BookRecord
		if rec.Blurb == "" {
			rec.Blurb = row.Original
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeCSV(r io.Reader) ([]core.BookRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []core.BookRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	blurbCol, ok := col["blurb"]
	if !ok {
		blurbCol, ok = col["original"]
	}
	if !ok {
		return nil, fmt.Errorf("CSV has neither a blurb nor an original column")
	}
	for _, name := range []string{"genre", "sub_genre", "url"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("CSV is missing the %s column", name)
		}
	}

	field := func(row []string, i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	out := []core.BookRecord{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		out = append(out, core.BookRecord{
			Genre:    field(row, col["genre"]),
			SubGenre: field(row, col["sub_genre"]),
			URL:      field(row, col["url"]),
			Blurb:    field(row, blurbCol),
		})
	}
	return out, nil
}
