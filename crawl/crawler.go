// Package crawl walks the catalog: genre pages → sub-genre listings →
// paginated book links → book pages, producing BookRecords.
package crawl

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/core/extract"
	"github.com/gaurav-prasanna/blurbpipe/core/fetch"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultProgressEvery = 100

// Progress is reported every ProgressEvery processed BookRefs.
type Progress struct {
	Processed int
	Total     int
	Records   int
	Skipped   int
	Elapsed   time.Duration
}

// ProgressFunc receives progress updates. It may be called from worker
// goroutines but never concurrently, and runs without the crawler's stats
// lock held, so it may call Crawler.Stats.
type ProgressFunc func(Progress)

// Stats are the aggregate counts of a crawl.
type Stats struct {
	Genres           int            `json:"genres"`
	SubGenres        int            `json:"sub_genres"`
	ListingPages     int            `json:"listing_pages"`
	BookRefs         int            `json:"book_refs"`
	Duplicates       int            `json:"duplicates"`
	Records          int            `json:"records"`
	Skipped          int            `json:"skipped"`
	FetchFailures    int            `json:"fetch_failures"`
	ExtractionMisses int            `json:"extraction_misses"`
	Filtered         map[string]int `json:"filtered"`
	Elapsed          time.Duration  `json:"elapsed"`
}

// Result is the output of a full crawl.
type Result struct {
	Records []core.BookRecord
	Stats   Stats
}

// Crawler orchestrates a Fetcher and an Extractor across the catalog.
type Crawler struct {
	fetcher       core.Fetcher
	extractor     core.Extractor
	pagination    Pagination
	filters       []Filter
	concurrency   int
	progressEvery int
	progress      ProgressFunc
	log           zerolog.Logger
	now           func() time.Time

	mu    sync.Mutex
	stats Stats

	// progressMu serializes progress callbacks.
	progressMu sync.Mutex
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Crawler) { c.log = log }
}

// WithProgress replaces the default progress reporter.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Crawler) { c.progress = fn }
}

// WithProgressEvery sets how many processed BookRefs separate progress reports.
func WithProgressEvery(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.progressEvery = n
		}
	}
}

// WithConcurrency caps the number of book pages fetched at once.
func WithConcurrency(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithFilters appends record filters.
func WithFilters(filters ...Filter) Option {
	return func(c *Crawler) { c.filters = append(c.filters, filters...) }
}

// WithPagination overrides the listing pagination parameters.
func WithPagination(p Pagination) Option {
	return func(c *Crawler) { c.pagination = p }
}

// New creates a Crawler. By default it runs sequentially, drops empty
// blurbs and logs progress every 100 books.
func New(fetcher core.Fetcher, extractor core.Extractor, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:       fetcher,
		extractor:     extractor,
		pagination:    DefaultPagination(),
		filters:       []Filter{EmptyBlurb()},
		concurrency:   1,
		progressEvery: defaultProgressEvery,
		log:           zerolog.Nop(),
		now:           time.Now,
		stats:         Stats{Filtered: map[string]int{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.progress == nil {
		c.progress = c.logProgress
	}
	return c
}

// Stats returns a snapshot of the counts gathered so far.
func (c *Crawler) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Filtered = maps.Clone(c.stats.Filtered)
	return s
}

// Run crawls every genre and returns the extracted records with the
// aggregate stats. Failures of individual pages are counted and skipped;
// only context cancellation stops the crawl early, in which case the
// records gathered so far are returned with the context error.
func (c *Crawler) Run(ctx context.Context, genres []core.GenreRef) (*Result, error) {
	c.mu.Lock()
	c.stats = Stats{Filtered: map[string]int{}}
	c.mu.Unlock()

	start := c.now()
	result := &Result{}
	finish := func(err error) (*Result, error) {
		c.update(func(s *Stats) { s.Elapsed = c.now().Sub(start) })
		result.Stats = c.Stats()
		c.log.Info().
			Int("records", result.Stats.Records).
			Int("skipped", result.Stats.Skipped).
			Int("fetch_failures", result.Stats.FetchFailures).
			Int("extraction_misses", result.Stats.ExtractionMisses).
			Dur("elapsed", result.Stats.Elapsed).
			Msg("crawl complete")
		return result, err
	}

	subs, err := c.SubGenres(ctx, genres)
	if err != nil {
		return finish(err)
	}
	refs, err := c.BookRefs(ctx, subs)
	if err != nil {
		return finish(err)
	}
	result.Records, err = c.Blurbs(ctx, refs)
	return finish(err)
}

// SubGenres fetches each genre page and collects its sub-genre links.
func (c *Crawler) SubGenres(ctx context.Context, genres []core.GenreRef) ([]core.SubGenreRef, error) {
	var subs []core.SubGenreRef
	for _, g := range genres {
		if err := ctx.Err(); err != nil {
			return subs, err
		}
		log := c.log.With().Str("genre", g.Name).Logger()

		html, err := c.fetchPage(ctx, log, g.URL)
		if err != nil {
			if ctx.Err() != nil {
				return subs, ctx.Err()
			}
			continue
		}

		links, err := c.extractor.SubGenreLinks(html)
		if err != nil {
			c.extractionMiss(log, g.URL, err)
			continue
		}

		found := 0
		for _, href := range links {
			abs, err := Resolve(g.URL, href)
			if err != nil {
				log.Debug().Err(err).Msg("ignoring sub-genre link")
				continue
			}
			subs = append(subs, core.SubGenreRef{Genre: g.Name, Slug: SubGenreSlug(abs), URL: abs})
			found++
		}
		c.update(func(s *Stats) { s.Genres++ })
		log.Info().Int("sub_genres", found).Msg("genre page acquired")
	}

	c.update(func(s *Stats) { s.SubGenres += len(subs) })
	return subs, nil
}

// BookRefs walks every listing page of each sub-genre and returns the
// de-duplicated book links in discovery order. Each page is fetched once
// and its links extracted once; a page that fails to load is skipped.
func (c *Crawler) BookRefs(ctx context.Context, subs []core.SubGenreRef) ([]core.BookRef, error) {
	q := NewQueue()
	defer func() {
		c.update(func(s *Stats) {
			s.BookRefs += q.Len()
			s.Duplicates += q.Duplicates()
		})
	}()

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return q.All(), err
		}
		log := c.log.With().Str("genre", sub.Genre).Str("sub_genre", sub.Slug).Logger()

		first, err := c.fetchPage(ctx, log, sub.URL)
		if err != nil {
			if ctx.Err() != nil {
				return q.All(), ctx.Err()
			}
			continue
		}

		last, err := c.extractor.LastListingPage(first)
		switch {
		case errors.Is(err, extract.ErrNotFound):
			// No pagination control: the listing fits on one page.
			last = 1
		case err != nil:
			c.extractionMiss(log, sub.URL, err)
			last = 1
		}

		for page := 1; page <= last; page++ {
			pageURL, html := sub.URL, first
			if page > 1 {
				pageURL, err = c.pagination.PageURL(sub.URL, page)
				if err != nil {
					c.extractionMiss(log, sub.URL, err)
					break
				}
				html, err = c.fetchPage(ctx, log.With().Int("page", page).Logger(), pageURL)
				if err != nil {
					if ctx.Err() != nil {
						return q.All(), ctx.Err()
					}
					continue
				}
			}
			c.update(func(s *Stats) { s.ListingPages++ })

			links, err := c.extractor.ListingBookLinks(html)
			if err != nil {
				c.extractionMiss(log, pageURL, err)
				continue
			}
			for _, href := range links {
				abs, err := Resolve(pageURL, href)
				if err != nil {
					log.Debug().Err(err).Msg("ignoring book link")
					continue
				}
				q.Add(core.BookRef{Genre: sub.Genre, SubGenre: sub.Slug, URL: abs})
			}
		}
		log.Info().Int("pages", last).Int("books_total", q.Len()).Msg("sub-genre acquired")
	}
	return q.All(), nil
}

// Blurbs visits every book page and extracts its description. Book pages
// are fetched by up to Concurrency workers; records come back in refs order.
func (c *Crawler) Blurbs(ctx context.Context, refs []core.BookRef) ([]core.BookRecord, error) {
	start := c.now()
	results := make([]*core.BookRecord, len(refs))
	processed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, ref := range refs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if rec, ok := c.blurb(gctx, ref); ok {
				results[i] = &rec
			}

			c.mu.Lock()
			processed++
			report := processed%c.progressEvery == 0
			p := Progress{
				Processed: processed,
				Total:     len(refs),
				Records:   c.stats.Records,
				Skipped:   c.stats.Skipped,
				Elapsed:   c.now().Sub(start),
			}
			c.mu.Unlock()

			if report {
				c.progressMu.Lock()
				c.progress(p)
				c.progressMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	records := make([]core.BookRecord, 0, len(refs))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	return records, ctx.Err()
}

// blurb fetches one book page and applies the filters to its record.
func (c *Crawler) blurb(ctx context.Context, ref core.BookRef) (core.BookRecord, bool) {
	log := c.log.With().
		Str("genre", ref.Genre).
		Str("sub_genre", ref.SubGenre).
		Int("book", ref.Index+1).
		Logger()

	html, err := c.fetchPage(ctx, log, ref.URL)
	if err != nil {
		return core.BookRecord{}, false
	}

	blurb, err := c.extractor.Description(html)
	if err != nil {
		c.update(func(s *Stats) {
			s.Skipped++
			s.ExtractionMisses++
		})
		log.Info().Err(err).Str("url", ref.URL).Msg("book skipped")
		return core.BookRecord{}, false
	}

	rec := core.BookRecord{Genre: ref.Genre, SubGenre: ref.SubGenre, URL: ref.URL, Blurb: blurb}
	for _, f := range c.filters {
		if f.Drop(rec) {
			c.update(func(s *Stats) { s.Filtered[f.Name]++ })
			log.Debug().Str("filter", f.Name).Str("url", ref.URL).Msg("book filtered")
			return core.BookRecord{}, false
		}
	}

	c.update(func(s *Stats) { s.Records++ })
	return rec, true
}

// fetchPage fetches url and returns its HTML. Any failure is counted and
// logged with the caller's genre/sub-genre context.
func (c *Crawler) fetchPage(ctx context.Context, log zerolog.Logger, url string) (string, error) {
	result, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		c.update(func(s *Stats) { s.FetchFailures++ })
		log.Warn().Err(err).Str("url", url).Int("status", fetch.StatusCode(err)).Msg("fetch failed, skipping")
		return "", err
	}
	return result.HTML, nil
}

func (c *Crawler) extractionMiss(log zerolog.Logger, url string, err error) {
	c.update(func(s *Stats) { s.ExtractionMisses++ })
	log.Warn().Err(err).Str("url", url).Msg("expected element missing, skipping")
}

// update mutates the stats under the lock. It must not be called while
// c.mu is held.
func (c *Crawler) update(fn func(*Stats)) {
	c.mu.Lock()
	fn(&c.stats)
	c.mu.Unlock()
}

// logProgress is the default ProgressFunc.
func (c *Crawler) logProgress(p Progress) {
	c.log.Info().
		Int("processed", p.Processed).
		Int("remaining", p.Total-p.Processed).
		Int("records", p.Records).
		Int("skipped", p.Skipped).
		Str("elapsed", p.Elapsed.Round(time.Second).String()).
		Msg("blurb progress")
}
