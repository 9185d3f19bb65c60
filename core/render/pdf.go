// Package render — PDF renderer.
// Lays the dataset summary out as a PDF report using gofpdf: a title,
// the genre totals table, then one sub-genre table per genre.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/jung-kurt/gofpdf"
)

// pdfColumns are the feature columns shared by every table.
var pdfColumns = []string{"Books", "Words", "Unique", "Sentences", "Sentiment", "Stop ratio"}

// PDFRenderer renders the dataset summary as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the dataset summary into PDF bytes.
func (r *PDFRenderer) Render(ds core.Dataset) ([]byte, error) {
	if !ds.Prepared {
		return nil, ErrNotPrepared
	}
	s := Summarize(ds.Rows)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, "Blurb dataset summary", "", "L", false)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, fmt.Sprintf("%d books across %d genres", s.Books, len(s.Genres)), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	renderHeading(pdf, "Genres")
	renderTable(pdf, tr, "Genre", s.Genres, func(g GroupSummary) string { return g.Genre })

	for _, genre := range s.Genres {
		var groups []GroupSummary
		for _, g := range s.Groups {
			if g.Genre == genre.Genre {
				groups = append(groups, g)
			}
		}
		renderHeading(pdf, tr(genre.Genre))
		renderTable(pdf, tr, "Sub-genre", groups, func(g GroupSummary) string { return g.SubGenre })
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, text, "", "L", false)
	pdf.Ln(2)
}

// renderTable writes one row per group; label picks the first column.
func renderTable(pdf *gofpdf.Fpdf, tr func(string) string, first string, groups []GroupSummary, label func(GroupSummary) string) {
	const labelWidth, cellWidth, rowHeight = 52.0, 22.0, 6.0

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(labelWidth, rowHeight, first, "1", 0, "L", true, 0, "")
	for _, col := range pdfColumns {
		pdf.CellFormat(cellWidth, rowHeight, col, "1", 0, "R", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, g := range groups {
		cells := []string{
			fmt.Sprintf("%d", g.Books),
			fmt.Sprintf("%.1f", g.AvgWords),
			fmt.Sprintf("%.1f", g.AvgUniqueWords),
			fmt.Sprintf("%.1f", g.AvgSentences),
			fmt.Sprintf("%.3f", g.AvgSentiment),
			fmt.Sprintf("%.2f", g.AvgStopwordRatio),
		}
		pdf.CellFormat(labelWidth, rowHeight, tr(label(g)), "1", 0, "L", false, 0, "")
		for _, c := range cells {
			pdf.CellFormat(cellWidth, rowHeight, c, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
