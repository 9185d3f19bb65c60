package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaurav-prasanna/blurbpipe/config"
	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/core/render"
	"github.com/gaurav-prasanna/blurbpipe/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecords = []core.BookRecord{
	{Genre: "Horror", SubGenre: "occult", URL: "https://x/1", Blurb: "The dogs are running. The cat sleeps."},
	{Genre: "Romance", SubGenre: "regency", URL: "https://x/2", Blurb: "A wonderful, happy love story!"},
}

func TestWriteDataset_Formats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	ds := core.FromBookRecords(testRecords)

	for _, format := range []string{"json", "csv", "sqlite"} {
		path, err := writeDataset(ctx, ds, format, dir, "blurbs")
		require.NoError(t, err, format)
		assert.FileExists(t, path)

		got, err := loadBookRecords(ctx, path)
		require.NoError(t, err, format)
		assert.Equal(t, testRecords, got, format)
	}

	_, err := writeDataset(ctx, ds, "xml", filepath.Join(dir, "never"), "blurbs")
	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "never"))
}

func TestPrepareRecords(t *testing.T) {
	ds, err := prepareRecords(config.Text{}, testRecords)
	require.NoError(t, err)
	require.True(t, ds.Prepared)
	require.Len(t, ds.Rows, 2)

	first := ds.Rows[0]
	assert.Equal(t, "Horror", first.Genre)
	assert.Equal(t, testRecords[0].Blurb, first.Original)
	assert.Equal(t, 2, first.SentenceCount)
	assert.Greater(t, ds.Rows[1].SentimentCompound, 0.0)
}

func TestPreparedDataset_ReportRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	ds, err := prepareRecords(config.Text{}, testRecords)
	require.NoError(t, err)

	for _, format := range []string{"json", "sqlite"} {
		path, err := writeDataset(ctx, ds, format, dir, "blurbs_prepared")
		require.NoError(t, err, format)

		got, err := loadPrepared(ctx, path)
		require.NoError(t, err, format)
		assert.Equal(t, ds.Rows, got.Rows, format)
		assert.True(t, got.Prepared)
	}
}

func TestSelectReportRenderer(t *testing.T) {
	r, err := selectReportRenderer(true, false)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", r.Extension())

	r, err = selectReportRenderer(false, true)
	require.NoError(t, err)
	assert.Equal(t, ".md", r.Extension())

	_, err = selectReportRenderer(true, true)
	assert.Error(t, err)
	_, err = selectReportRenderer(false, false)
	assert.Error(t, err)
}

func TestPrintTables(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, crawl.Stats{
		Records:  3,
		Filtered: map[string]int{"short_blurb": 2, "empty_blurb": 1},
		Elapsed:  1500 * time.Millisecond,
	})
	out := buf.String()
	assert.Contains(t, out, "filtered: empty_blurb")
	assert.Contains(t, out, "1.5s")

	buf.Reset()
	printSummary(&buf, render.Summary{Books: 1, Genres: []render.GroupSummary{{Genre: "Horror", Books: 1, AvgWords: 4}}})
	assert.Contains(t, buf.String(), "Horror")
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "csv", firstNonEmpty("", "csv", "json"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestMain(m *testing.M) {
	cfg = config.Default()
	os.Exit(m.Run())
}
