package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *Store {
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_BookRecords(t *testing.T) {
	ctx := context.Background()
	s := setup(t)

	empty, err := s.LoadBookRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	records := []core.BookRecord{
		{Genre: "Romance", SubGenre: "regency", URL: "https://x/2", Blurb: "Love."},
		{Genre: "Horror", SubGenre: "occult", URL: "https://x/1", Blurb: "Boo."},
	}
	require.NoError(t, s.SaveBookRecords(ctx, records))

	got, err := s.LoadBookRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	// A second save replaces the first.
	require.NoError(t, s.SaveBookRecords(ctx, records[1:]))
	got, err = s.LoadBookRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, records[1:], got)
}

func TestStore_Prepared(t *testing.T) {
	ctx := context.Background()
	s := setup(t)

	ds := core.Dataset{Prepared: true, Rows: []core.PreparedRecord{{
		Genre: "Horror", SubGenre: "occult", URL: "https://x/1",
		TextVariants: core.TextVariants{Original: "The dogs ran.", Clean: "dogs ran", Stemmed: "dog ran", Lemmatized: "dog run"},
		Features: core.Features{
			CharCount: 7, WordCount: 2, UniqueWordCount: 2, SentenceCount: 1,
			AvgWordsPerSentence: 2, SentimentCompound: -0.25, StopwordCount: 1, StopwordRatio: 0.5,
		},
	}}}
	require.NoError(t, s.SaveDataset(ctx, ds))

	got, err := s.LoadPrepared(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds, got)

	blurbs, err := s.LoadBookRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, blurbs)
}

func TestStore_SaveUnpreparedDataset(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blurbs.sqlite")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	records := []core.BookRecord{{Genre: "Horror", SubGenre: "occult", URL: "https://x/1", Blurb: "Boo."}}
	require.NoError(t, s.SaveDataset(ctx, core.FromBookRecords(records)))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.LoadBookRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
