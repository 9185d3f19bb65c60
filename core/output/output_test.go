package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/core/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var records = []core.BookRecord{
	{Genre: "Horror", SubGenre: "occult", URL: "https://x/1", Blurb: "A ghost, a curse."},
	{Genre: "Romance", SubGenre: "regency", URL: "https://x/2", Blurb: "Line one\nline two"},
}

func TestWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("blurbs", []byte("[]"), ".json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "blurbs.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDatasetName(t *testing.T) {
	tests := []struct {
		path, suffix, want string
	}{
		{"./out/blurbs.json", "prepared", "blurbs_prepared"},
		{"blurbs.csv", "", "blurbs"},
		{"/tmp/my data.v2.json", "summary", "my_data_v2_summary"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DatasetName(tt.path, tt.suffix), tt.path)
	}
}

func TestReadBookRecords_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	for _, r := range []core.Renderer{render.NewJSONRenderer(), render.NewCSVRenderer()} {
		data, err := r.Render(core.FromBookRecords(records))
		require.NoError(t, err)
		path, err := w.Write("blurbs", data, r.Extension())
		require.NoError(t, err)

		got, err := ReadBookRecords(path)
		require.NoError(t, err, r.Extension())
		assert.Equal(t, records, got, r.Extension())
	}
}

func TestReadBookRecords_PreparedCSV(t *testing.T) {
	ds := core.FromBookRecords(records)
	ds.Prepared = true
	data, err := render.NewCSVRenderer().Render(ds)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prepared.csv")
	require.NoError(t, os.WriteFile(path, data, 0644))

	got, err := ReadBookRecords(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadBookRecords_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadBookRecords(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	txt := filepath.Join(dir, "blurbs.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0644))
	_, err = ReadBookRecords(txt)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("genre,url\nHorror,https://x\n"), 0644))
	_, err = ReadBookRecords(bad)
	assert.Error(t, err)
}

func TestReadPrepared(t *testing.T) {
	ds := core.Dataset{Prepared: true, Rows: []core.PreparedRecord{{
		Genre: "Horror", SubGenre: "occult", URL: "https://x/1",
		TextVariants: core.TextVariants{Original: "Boo.", Clean: "boo"},
		Features:     core.Features{WordCount: 1, SentenceCount: 1},
	}}}
	data, err := render.NewJSONRenderer().Render(ds)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prepared.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	got, err := ReadPrepared(path)
	require.NoError(t, err)
	assert.Equal(t, ds, got)

	_, err = ReadPrepared(filepath.Join(t.TempDir(), "prepared.csv"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
