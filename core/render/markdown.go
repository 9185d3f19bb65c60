// Package render provides output renderers for the blurbpipe dataset.
// This file implements the Markdown summary report.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/blurbpipe/core"
)

// ErrNotPrepared is returned by report renderers given a dataset without features.
var ErrNotPrepared = errors.New("report needs a prepared dataset")

// MarkdownRenderer writes the dataset summary as Markdown tables.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render summarizes the dataset per genre and per sub-genre.
func (r *MarkdownRenderer) Render(ds core.Dataset) ([]byte, error) {
	if !ds.Prepared {
		return nil, ErrNotPrepared
	}
	s := Summarize(ds.Rows)

	var b strings.Builder
	b.WriteString("# Blurb dataset summary\n\n")
	fmt.Fprintf(&b, "Books: %d\n\n", s.Books)

	b.WriteString("## Genres\n\n")
	b.WriteString("| Genre | Books | Avg words | Avg unique words | Avg sentences | Avg sentiment | Avg stopword ratio |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, g := range s.Genres {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", escapeCell(g.Genre), g.Books, featureCells(g))
	}

	b.WriteString("\n## Sub-genres\n\n")
	b.WriteString("| Genre | Sub-genre | Books | Avg words | Avg unique words | Avg sentences | Avg sentiment | Avg stopword ratio |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|\n")
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", escapeCell(g.Genre), escapeCell(g.SubGenre), g.Books, featureCells(g))
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func featureCells(g GroupSummary) string {
	return fmt.Sprintf("%.1f | %.1f | %.1f | %.3f | %.2f",
		g.AvgWords, g.AvgUniqueWords, g.AvgSentences, g.AvgSentiment, g.AvgStopwordRatio)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
