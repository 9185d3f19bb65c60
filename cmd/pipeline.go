// Package cmd — shared pipeline steps.
// Preparation, dataset writing and the summary tables printed to the
// terminal are used by more than one command.
package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gaurav-prasanna/blurbpipe/config"
	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/core/features"
	"github.com/gaurav-prasanna/blurbpipe/core/normalize"
	"github.com/gaurav-prasanna/blurbpipe/core/output"
	"github.com/gaurav-prasanna/blurbpipe/core/render"
	"github.com/gaurav-prasanna/blurbpipe/core/store"
	"github.com/gaurav-prasanna/blurbpipe/crawl"
	"github.com/jedib0t/go-pretty/v6/table"
)

const formatSQLite = "sqlite"

// prepareRecords runs records through the normalizer and feature builder.
func prepareRecords(text config.Text, records []core.BookRecord) (core.Dataset, error) {
	pipeline, err := normalize.New(normalize.Options{
		ExtraStopwords:   text.ExtraStopwords,
		ExcludeStopwords: text.ExcludeStopwords,
	})
	if err != nil {
		return core.Dataset{}, fmt.Errorf("loading normalizer: %w", err)
	}
	logger.Debug().Int("stopwords", pipeline.Stopwords().Len()).Msg("stopword list loaded")

	builder, err := features.NewBuilder(pipeline.Stopwords())
	if err != nil {
		return core.Dataset{}, fmt.Errorf("loading feature builder: %w", err)
	}
	return core.Dataset{Rows: builder.PrepareAll(pipeline, records), Prepared: true}, nil
}

// selectRenderer returns the file renderer for a dataset format.
func selectRenderer(format string) (core.Renderer, error) {
	switch format {
	case "json":
		return render.NewJSONRenderer(), nil
	case "csv":
		return render.NewCSVRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json, csv or sqlite)", format)
	}
}

// writeDataset writes ds as <dir>/<name>.<format> and returns the path.
func writeDataset(ctx context.Context, ds core.Dataset, format, dir, name string) (string, error) {
	if format != formatSQLite {
		// Fail on a bad format before creating the output directory.
		if _, err := selectRenderer(format); err != nil {
			return "", err
		}
	}

	writer, err := output.New(dir)
	if err != nil {
		return "", fmt.Errorf("initializing output writer: %w", err)
	}

	if format == formatSQLite {
		path := writer.Path(name, ".sqlite")
		s, err := store.Open(ctx, path)
		if err != nil {
			return "", err
		}
		defer s.Close()
		if err := s.SaveDataset(ctx, ds); err != nil {
			return "", fmt.Errorf("saving %s: %w", path, err)
		}
		return path, nil
	}

	renderer, _ := selectRenderer(format)
	data, err := renderer.Render(ds)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return writer.Write(name, data, renderer.Extension())
}

// isSQLite reports whether path names a database written by the sqlite format.
func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".db":
		return true
	}
	return false
}

// loadBookRecords reads a scraped (or prepared) dataset in any written format.
func loadBookRecords(ctx context.Context, path string) ([]core.BookRecord, error) {
	if !isSQLite(path) {
		return output.ReadBookRecords(path)
	}
	s, err := store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.LoadBookRecords(ctx)
}

// loadPrepared reads a prepared dataset from JSON or SQLite.
func loadPrepared(ctx context.Context, path string) (core.Dataset, error) {
	if !isSQLite(path) {
		return output.ReadPrepared(path)
	}
	s, err := store.Open(ctx, path)
	if err != nil {
		return core.Dataset{}, err
	}
	defer s.Close()
	return s.LoadPrepared(ctx)
}

// printStats renders the crawl totals as a table.
func printStats(w io.Writer, s crawl.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Stat", "Value"})
	t.AppendRows([]table.Row{
		{"genres", s.Genres},
		{"sub-genres", s.SubGenres},
		{"listing pages", s.ListingPages},
		{"book refs", s.BookRefs},
		{"duplicates", s.Duplicates},
		{"records", s.Records},
		{"skipped", s.Skipped},
		{"fetch failures", s.FetchFailures},
		{"extraction misses", s.ExtractionMisses},
	})

	names := make([]string, 0, len(s.Filtered))
	for name := range s.Filtered {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.AppendRow(table.Row{"filtered: " + name, s.Filtered[name]})
	}

	t.AppendRow(table.Row{"elapsed", s.Elapsed.Round(time.Millisecond).String()})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// printSummary renders per-genre means as a table.
func printSummary(w io.Writer, s render.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Genre", "Books", "Avg words", "Avg sentences", "Avg sentiment", "Avg stopword ratio"})
	for _, g := range s.Genres {
		t.AppendRow(table.Row{
			g.Genre, g.Books,
			fmt.Sprintf("%.1f", g.AvgWords),
			fmt.Sprintf("%.1f", g.AvgSentences),
			fmt.Sprintf("%.3f", g.AvgSentiment),
			fmt.Sprintf("%.2f", g.AvgStopwordRatio),
		})
	}
	t.AppendFooter(table.Row{"total", s.Books})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
