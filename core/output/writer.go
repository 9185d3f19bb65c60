// Package output handles file naming and writing for blurbpipe datasets.
// Filenames are derived from a dataset name (e.g. "blurbs" → blurbs.csv);
// anything outside [A-Za-z0-9_-] becomes an underscore.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Path returns where a dataset called name with extension ext is written.
func (w *Writer) Path(name, ext string) string {
	return filepath.Join(w.OutputDir, sanitize(name)+ext)
}

// Write writes data to <OutputDir>/<name><ext>, replacing any existing file.
func (w *Writer) Write(name string, data []byte, ext string) (string, error) {
	path := w.Path(name, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// DatasetName derives an output name from an input file path,
// e.g. ./out/blurbs.json with suffix "prepared" → blurbs_prepared.
func DatasetName(path, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if suffix == "" {
		return sanitize(base)
	}
	return sanitize(base + "_" + suffix)
}

// sanitize replaces characters that are unsafe in filenames with underscores.
func sanitize(s string) string {
	if s == "" {
		return "dataset"
	}
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
