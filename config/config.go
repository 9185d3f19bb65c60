// Package config loads blurbpipe's run configuration: the genre seeds, the
// site selectors and the tuning knobs of each pipeline stage.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/core/extract"
	"github.com/gaurav-prasanna/blurbpipe/crawl"
	"github.com/gaurav-prasanna/blurbpipe/logging"
	"github.com/titanous/json5"
)

// Config is the complete run configuration.
type Config struct {
	Genres     []core.GenreRef   `json:"genres"`
	Selectors  extract.Selectors `json:"selectors"`
	Fetch      Fetch             `json:"fetch"`
	Pagination crawl.Pagination  `json:"pagination"`
	Crawl      Crawl             `json:"crawl"`
	Text       Text              `json:"text"`
	Output     Output            `json:"output"`
	Log        logging.Config    `json:"log"`
}

// Fetch configures the HTTP fetcher.
type Fetch struct {
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration.
func (f Fetch) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Crawl configures the crawler.
type Crawl struct {
	Concurrency   int      `json:"concurrency"`
	ProgressEvery int      `json:"progress_every"`
	MinBlurbChars int      `json:"min_blurb_chars"`
	ExcludeURLs   []string `json:"exclude_urls"`
}

// Text configures the normalizer's stopword set.
type Text struct {
	ExtraStopwords   []string `json:"extra_stopwords"`
	ExcludeStopwords []string `json:"exclude_stopwords"`
}

// Output configures where and how datasets are written.
type Output struct {
	Dir    string `json:"dir"`
	Format string `json:"format"` // json, csv, sqlite
}

// Default returns the built-in configuration: the four Barnes & Noble
// fiction genres and the selectors matching their markup.
func Default() Config {
	return Config{
		Genres: []core.GenreRef{
			{Name: "Horror", URL: "https://www.barnesandnoble.com/b/books/fiction/horror/_/N-29Z8q8Z1d51"},
			{Name: "Romance", URL: "https://www.barnesandnoble.com/b/books/romance/_/N-29Z8q8Z17y3"},
			{Name: "Mystery and Crime", URL: "https://www.barnesandnoble.com/b/books/mystery-crime/_/N-29Z8q8Z16g4"},
			{Name: "Sci-Fi and Fantasy", URL: "https://www.barnesandnoble.com/b/books/science-fiction-fantasy/_/N-29Z8q8Z180l"},
		},
		Selectors:  extract.DefaultSelectors(),
		Fetch:      Fetch{UserAgent: "blurbpipe/1.0", TimeoutSeconds: 30},
		Pagination: crawl.DefaultPagination(),
		Crawl:      Crawl{Concurrency: 1, ProgressEvery: 100},
		Output:     Output{Format: "json"},
		Log:        logging.Config{Level: "info", Format: logging.FormatPretty},
	}
}

// DefaultFile is the config file read when none is named on the command line.
const DefaultFile = "blurbpipe.json5"

// Load reads a json5 config file, merges <name>.local.<ext> over it and
// fills anything left unset from Default. The named file must exist; the
// .local override is optional.
func Load(name string) (Config, error) {
	return load(name, true)
}

// LoadOptional is Load for a file that may be absent, such as DefaultFile.
// With neither file present the defaults are returned unchanged.
func LoadOptional(name string) (Config, error) {
	return load(name, false)
}

func load(name string, required bool) (Config, error) {
	var cfg Config

	if err := readInto(name, &cfg, required); err != nil {
		return cfg, err
	}

	ext := filepath.Ext(name)
	local := strings.TrimSuffix(name, ext) + ".local" + ext
	var override Config
	if err := readInto(local, &override, false); err != nil {
		return cfg, err
	}
	if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
		return cfg, fmt.Errorf("merging %s: %w", local, err)
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return cfg, fmt.Errorf("applying defaults: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values a run cannot proceed without.
func (c Config) Validate() error {
	if len(c.Genres) == 0 {
		return fmt.Errorf("config: at least one genre is required")
	}
	for i, g := range c.Genres {
		if g.Name == "" || g.URL == "" {
			return fmt.Errorf("config: genre %d needs both name and url", i)
		}
	}
	switch c.Output.Format {
	case "json", "csv", "sqlite":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if c.Crawl.Concurrency < 0 {
		return fmt.Errorf("config: concurrency must not be negative")
	}
	return nil
}

func readInto(path string, out *Config, required bool) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json5.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
