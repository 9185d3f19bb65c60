// Package cmd — scrape command.
// This is the main command that orchestrates the pipeline:
// crawl → (optionally) normalize + features → render → write.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/core/extract"
	"github.com/gaurav-prasanna/blurbpipe/core/fetch"
	"github.com/gaurav-prasanna/blurbpipe/crawl"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	scrapeOutputDir   string
	scrapeFormat      string
	scrapeName        string
	scrapeConcurrency int
	scrapePrepare     bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Crawl the configured genres and write the blurb dataset",
	Long: `Scrape walks every configured genre: its sub-genre links, every page of each
sub-genre listing and every book page, and writes one row per book that has
a description.

Examples:
  blurbpipe scrape
  blurbpipe scrape --format csv --output_dir ./out
  blurbpipe scrape --concurrency 4 --prepare --format sqlite`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&scrapeOutputDir, "output_dir", "", "Output directory (default: config output.dir, else current directory)")
	scrapeCmd.Flags().StringVar(&scrapeFormat, "format", "", "Output format: json, csv or sqlite (default: config output.format)")
	scrapeCmd.Flags().StringVar(&scrapeName, "name", "blurbs", "Output file name without extension")
	scrapeCmd.Flags().IntVar(&scrapeConcurrency, "concurrency", 0, "Book pages fetched at once (default: config crawl.concurrency)")
	scrapeCmd.Flags().BoolVar(&scrapePrepare, "prepare", false, "Also compute text variants and features")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format := firstNonEmpty(scrapeFormat, cfg.Output.Format)
	if format != formatSQLite {
		if _, err := selectRenderer(format); err != nil {
			return err
		}
	}
	concurrency := cfg.Crawl.Concurrency
	if scrapeConcurrency > 0 {
		concurrency = scrapeConcurrency
	}

	crawler := newCrawler(concurrency)
	result, crawlErr := crawler.Run(ctx, cfg.Genres)
	if crawlErr != nil && !errors.Is(crawlErr, context.Canceled) {
		return fmt.Errorf("crawl: %w", crawlErr)
	}
	if crawlErr != nil {
		logger.Warn().Int("records", len(result.Records)).Msg("crawl interrupted, writing partial dataset")
	}

	ds := core.FromBookRecords(result.Records)
	if scrapePrepare {
		var err error
		if ds, err = prepareRecords(cfg.Text, result.Records); err != nil {
			return err
		}
	}

	// The crawl context may already be canceled; the write still has to happen.
	path, err := writeDataset(context.WithoutCancel(ctx), ds, format, firstNonEmpty(scrapeOutputDir, cfg.Output.Dir), scrapeName)
	if err != nil {
		return err
	}

	printStats(cmd.OutOrStdout(), result.Stats)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return crawlErr
}

// newCrawler wires the fetcher, extractor and filters from cfg.
func newCrawler(concurrency int) *crawl.Crawler {
	fetcher := fetch.New(fetch.Options{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout(),
	})
	extractor := extract.New(cfg.Selectors)

	// EmptyBlurb is always on; these are added after it.
	var filters []crawl.Filter
	if cfg.Crawl.MinBlurbChars > 0 {
		filters = append(filters, crawl.ShortBlurb(cfg.Crawl.MinBlurbChars))
	}
	if len(cfg.Crawl.ExcludeURLs) > 0 {
		filters = append(filters, crawl.ExcludeURLs(cfg.Crawl.ExcludeURLs...))
	}

	return crawl.New(fetcher, extractor,
		crawl.WithLogger(logger),
		crawl.WithConcurrency(concurrency),
		crawl.WithProgressEvery(cfg.Crawl.ProgressEvery),
		crawl.WithPagination(cfg.Pagination),
		crawl.WithFilters(filters...),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
