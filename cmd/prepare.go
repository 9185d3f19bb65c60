// Package cmd — prepare command.
// Reads a previously scraped dataset and adds text variants and features.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/blurbpipe/core/output"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	prepareOutputDir        string
	prepareFormat           string
	prepareExtraStopwords   []string
	prepareExcludeStopwords []string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare <dataset>",
	Short: "Compute text variants and features for a scraped dataset",
	Long: `Prepare reads a dataset written by "scrape" (.json, .csv or .sqlite) and
writes <name>_prepared with cleaned, stemmed and lemmatized text and the
numeric features of every blurb.

Examples:
  blurbpipe prepare blurbs.json
  blurbpipe prepare blurbs.csv --format csv --extra_stopwords book,novel
  blurbpipe prepare blurbs.sqlite --exclude_stopwords not,no`,
	Args: cobra.ExactArgs(1),
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)

	prepareCmd.Flags().StringVar(&prepareOutputDir, "output_dir", "", "Output directory (default: config output.dir, else current directory)")
	prepareCmd.Flags().StringVar(&prepareFormat, "format", "", "Output format: json, csv or sqlite (default: config output.format)")
	prepareCmd.Flags().StringSliceVar(&prepareExtraStopwords, "extra_stopwords", nil, "Words to add to the stopword list")
	prepareCmd.Flags().StringSliceVar(&prepareExcludeStopwords, "exclude_stopwords", nil, "Words to keep even though they are stopwords")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	in := args[0]

	records, err := loadBookRecords(ctx, in)
	if err != nil {
		return err
	}
	logger.Info().Str("dataset", in).Int("records", len(records)).Msg("preparing")

	text := cfg.Text
	text.ExtraStopwords = append(append([]string{}, text.ExtraStopwords...), prepareExtraStopwords...)
	text.ExcludeStopwords = append(append([]string{}, text.ExcludeStopwords...), prepareExcludeStopwords...)

	ds, err := prepareRecords(text, records)
	if err != nil {
		return err
	}

	format := firstNonEmpty(prepareFormat, cfg.Output.Format)
	path, err := writeDataset(ctx, ds, format, firstNonEmpty(prepareOutputDir, cfg.Output.Dir), output.DatasetName(in, "prepared"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s (%d rows)\n", path, len(ds.Rows))
	return nil
}
