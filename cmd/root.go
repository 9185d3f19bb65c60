// Package cmd implements the CLI commands for blurbpipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gaurav-prasanna/blurbpipe/config"
	"github.com/gaurav-prasanna/blurbpipe/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Shared state, populated before any subcommand runs.
var (
	flagConfig   string
	flagLogLevel string

	cfg    config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "blurbpipe",
	Short: "blurbpipe — scrape book blurbs and prepare them for text analysis",
	Long: `blurbpipe crawls a catalog organized by genre and sub-genre, extracts the
description ("blurb") of every book it finds, and prepares the blurbs for
analysis: cleaned, stemmed and lemmatized text plus numeric features.

Usage:
  blurbpipe scrape [flags]
  blurbpipe prepare <dataset> [flags]
  blurbpipe report <prepared.json> --markdown|--pdf`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultFile, "Config file (a .local variant is merged over it)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log_level", "", "Override the configured log level (debug, info, warn, error)")
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	load := config.LoadOptional
	if cmd.Flags().Changed("config") {
		load = config.Load
	}
	c, err := load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagLogLevel != "" {
		c.Log.Level = flagLogLevel
	}

	l, err := logging.New(c.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	cfg, logger = c, l
	return nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the
// command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
