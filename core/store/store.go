// Package store writes datasets to a SQLite database.
// Each save replaces the table's contents; the database is an output
// format, not a crawl checkpoint.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "embed"

	"github.com/gaurav-prasanna/blurbpipe/core"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store is a SQLite-backed dataset sink.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBookRecords replaces the blurbs table with records, in order.
func (s *Store) SaveBookRecords(ctx context.Context, records []core.BookRecord) error {
	return s.replace(ctx, "blurbs",
		`insert into blurbs (position, genre, sub_genre, url, blurb) values (?, ?, ?, ?, ?)`,
		len(records), func(stmt *sql.Stmt, i int) error {
			r := records[i]
			_, err := stmt.ExecContext(ctx, i, r.Genre, r.SubGenre, r.URL, r.Blurb)
			return err
		})
}

// LoadBookRecords returns the blurbs table in saved order.
func (s *Store) LoadBookRecords(ctx context.Context) ([]core.BookRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`select genre, sub_genre, url, blurb from blurbs order by position`)
	if err != nil {
		return nil, fmt.Errorf("querying blurbs: %w", err)
	}
	defer rows.Close()

	out := []core.BookRecord{}
	for rows.Next() {
		var r core.BookRecord
		if err := rows.Scan(&r.Genre, &r.SubGenre, &r.URL, &r.Blurb); err != nil {
			return nil, fmt.Errorf("scanning blurb: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading blurbs: %w", err)
	}
	return out, nil
}

// SavePrepared replaces the prepared table with rows, in order.
func (s *Store) SavePrepared(ctx context.Context, rows []core.PreparedRecord) error {
	return s.replace(ctx, "prepared",
		`insert into prepared (
			position, genre, sub_genre, url,
			original, clean, stemmed, lemmatized,
			char_count, word_count, unique_word_count, sentence_count,
			avg_words_per_sentence, sentiment_compound, stopword_count, stopword_ratio
		) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(rows), func(stmt *sql.Stmt, i int) error {
			r := rows[i]
			_, err := stmt.ExecContext(ctx, i, r.Genre, r.SubGenre, r.URL,
				r.Original, r.Clean, r.Stemmed, r.Lemmatized,
				r.CharCount, r.WordCount, r.UniqueWordCount, r.SentenceCount,
				r.AvgWordsPerSentence, r.SentimentCompound, r.StopwordCount, r.StopwordRatio)
			return err
		})
}

// LoadPrepared returns the prepared table in saved order.
func (s *Store) LoadPrepared(ctx context.Context) (core.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `select
		genre, sub_genre, url, original, clean, stemmed, lemmatized,
		char_count, word_count, unique_word_count, sentence_count,
		avg_words_per_sentence, sentiment_compound, stopword_count, stopword_ratio
		from prepared order by position`)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("querying prepared: %w", err)
	}
	defer rows.Close()

	ds := core.Dataset{Rows: []core.PreparedRecord{}, Prepared: true}
	for rows.Next() {
		var r core.PreparedRecord
		if err := rows.Scan(&r.Genre, &r.SubGenre, &r.URL,
			&r.Original, &r.Clean, &r.Stemmed, &r.Lemmatized,
			&r.CharCount, &r.WordCount, &r.UniqueWordCount, &r.SentenceCount,
			&r.AvgWordsPerSentence, &r.SentimentCompound, &r.StopwordCount, &r.StopwordRatio); err != nil {
			return core.Dataset{}, fmt.Errorf("scanning prepared row: %w", err)
		}
		ds.Rows = append(ds.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return core.Dataset{}, fmt.Errorf("reading prepared: %w", err)
	}
	return ds, nil
}

// SaveDataset stores ds in the table matching its shape.
func (s *Store) SaveDataset(ctx context.Context, ds core.Dataset) error {
	if ds.Prepared {
		return s.SavePrepared(ctx, ds.Rows)
	}
	records := make([]core.BookRecord, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		records = append(records, core.BookRecord{Genre: r.Genre, SubGenre: r.SubGenre, URL: r.URL, Blurb: r.Original})
	}
	return s.SaveBookRecords(ctx, records)
}

// replace empties table and inserts n rows in one transaction.
func (s *Store) replace(ctx context.Context, table, insert string, n int, exec func(*sql.Stmt, int) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "delete from "+table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}
