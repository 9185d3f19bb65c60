// Package cmd — report command.
// Summarizes a prepared dataset per genre and sub-genre as Markdown or PDF.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/core/output"
	"github.com/gaurav-prasanna/blurbpipe/core/render"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	reportPDF       bool
	reportMarkdown  bool
	reportOutputDir string
)

var reportCmd = &cobra.Command{
	Use:   "report <prepared.json|prepared.sqlite>",
	Short: "Write a per-genre summary of a prepared dataset",
	Long: `Report groups a prepared dataset by genre and sub-genre and writes the book
counts and mean features as a Markdown or PDF document.

Examples:
  blurbpipe report blurbs_prepared.json --markdown
  blurbpipe report blurbs_prepared.sqlite --pdf --output_dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportPDF, "pdf", false, "Output PDF")
	reportCmd.Flags().BoolVar(&reportMarkdown, "markdown", false, "Output Markdown")
	reportCmd.Flags().StringVar(&reportOutputDir, "output_dir", "", "Output directory (default: config output.dir, else current directory)")
}

func runReport(cmd *cobra.Command, args []string) error {
	renderer, err := selectReportRenderer(reportPDF, reportMarkdown)
	if err != nil {
		return err
	}

	in := args[0]
	ds, err := loadPrepared(cmd.Context(), in)
	if err != nil {
		return err
	}

	data, err := renderer.Render(ds)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	writer, err := output.New(firstNonEmpty(reportOutputDir, cfg.Output.Dir))
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(output.DatasetName(in, "summary"), data, renderer.Extension())
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), render.Summarize(ds.Rows))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// selectReportRenderer checks that exactly one report format is chosen.
func selectReportRenderer(pdf, markdown bool) (core.Renderer, error) {
	switch {
	case pdf && markdown:
		return nil, fmt.Errorf("only one report format allowed per run")
	case pdf:
		return render.NewPDFRenderer(), nil
	case markdown:
		return render.NewMarkdownRenderer(), nil
	default:
		return nil, fmt.Errorf("exactly one report format is required: --pdf or --markdown")
	}
}
