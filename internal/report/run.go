// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report drives the conversion pipeline: discover input files, parse
// them, optionally merge report fragments, and write the selected output
// format. All diagnostics go to an injected writer; the primary output only
// ever goes to the output file.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/meddata/noteconv/internal/export"
	"github.com/meddata/noteconv/internal/merge"
	"github.com/meddata/noteconv/internal/tsv"
	"github.com/meddata/noteconv/pkg/types"
)

// Options configures one conversion run.
type Options struct {
	// InputDir is the directory of export files. Must exist and be a directory.
	InputDir string

	// OutputPath selects the format by extension: .csv, .json, .yaml, .yml.
	OutputPath string

	// Pattern is the glob for input files, relative to InputDir.
	Pattern string

	// Compact selects single-line JSON (ignored for other formats).
	Compact bool

	// Merge consolidates report fragments before writing.
	Merge bool
}

// Summary reports what a run processed.
type Summary struct {
	// Parsed counts records read across all input files.
	Parsed int
	// Written counts records in the output (after any merge).
	Written int
}

// Run executes the pipeline. Per-file problems are warnings and the run
// continues; an invalid input directory, zero total records, or an unknown
// output extension is fatal. No output file is created on a fatal error.
func Run(opts Options, w io.Writer) (Summary, error) {
	var sum Summary

	info, err := os.Stat(opts.InputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return sum, fmt.Errorf("input directory %q does not exist", opts.InputDir)
		}
		return sum, fmt.Errorf("reading input directory %q: %w", opts.InputDir, err)
	}
	if !info.IsDir() {
		return sum, fmt.Errorf("%q is not a directory", opts.InputDir)
	}

	records, err := Collect(opts.InputDir, opts.Pattern, w)
	if err != nil {
		return sum, err
	}
	sum.Parsed = len(records)

	if len(records) == 0 {
		return sum, fmt.Errorf("no records to write")
	}

	if opts.Merge {
		records = merge.Merge(records, w)
	}
	sum.Written = len(records)

	switch ext := strings.ToLower(filepath.Ext(opts.OutputPath)); ext {
	case ".csv":
		err = export.WriteCSV(records, opts.OutputPath, w)
	case ".json":
		err = export.WriteJSON(records, opts.OutputPath, !opts.Compact, w)
	case ".yaml", ".yml":
		err = export.WriteYAML(records, opts.OutputPath, w)
	default:
		err = fmt.Errorf("unsupported output format %q: use .csv, .json, or .yaml", ext)
	}
	if err != nil {
		return sum, err
	}

	return sum, nil
}

// Collect parses every file in dir matching pattern and returns the flattened
// record sequence. Zero matching files is a warning, not an error; files that
// fail to parse contribute nothing and the rest still load.
func Collect(dir, pattern string, w io.Writer) ([]*types.Record, error) {
	files, err := tsv.Discover(dir, pattern)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		fmt.Fprintf(w, "Warning: No files matching %q found in %s\n", pattern, dir)
		return nil, nil
	}

	fmt.Fprintf(w, "Processing %d files...\n", len(files))

	var records []*types.Record
	for _, path := range files {
		res := tsv.ParseFile(path, w)
		records = append(records, res.Records...)
	}

	fmt.Fprintf(w, "Successfully processed %d records from %d files\n",
		len(records), len(files))
	return records, nil
}
