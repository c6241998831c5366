// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tsv parses Epic tab-separated export files. Each file carries one
// header line followed by data rows; rows with the wrong column count are
// padded or truncated rather than rejected.
package tsv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/meddata/noteconv/pkg/types"
)

// FileResult is the outcome of parsing one input file. A failed file carries
// Err and no records; the caller decides whether to continue.
type FileResult struct {
	Path    string
	Records []*types.Record
	Err     error
}

// ParseFile reads and parses one export file. Read and decode failures are
// per-file conditions: they produce a warning on w and a FileResult with Err
// set, never an aborted run.
func ParseFile(path string, w io.Writer) FileResult {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error processing %s: %v\n", name, err)
		return FileResult{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		err := fmt.Errorf("not valid UTF-8")
		fmt.Fprintf(w, "Error processing %s: %v\n", name, err)
		return FileResult{Path: path, Err: err}
	}

	records := ParseLines(name, strings.Split(string(data), "\n"), w)
	return FileResult{Path: path, Records: records}
}

// ParseLines parses a header line plus data rows into records. name is used
// only in diagnostics written to w.
//
// A file with fewer than two lines yields no records. The header is split on
// tab; duplicate header names are kept as-is and resolve last-value-wins when
// zipped with row values. Whitespace-only lines are skipped silently. A row
// whose value count differs from the header count is reconciled by padding
// with empty strings or dropping trailing extras, with a warning either way.
func ParseLines(name string, lines []string, w io.Writer) []*types.Record {
	// A trailing newline in the file produces a final empty element that is
	// not a line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	if len(lines) < 2 {
		fmt.Fprintf(w, "Warning: %s has fewer than 2 lines, skipping\n", name)
		return nil
	}

	headers := strings.Split(strings.TrimSpace(lines[0]), "\t")

	var records []*types.Record
	for i, line := range lines[1:] {
		lineNum := i + 2

		if strings.TrimSpace(line) == "" {
			continue
		}

		values := strings.Split(strings.TrimSpace(line), "\t")

		if len(values) != len(headers) {
			fmt.Fprintf(w, "Warning: %s line %d has %d headers but %d values\n",
				name, lineNum, len(headers), len(values))
			if len(values) < len(headers) {
				for len(values) < len(headers) {
					values = append(values, "")
				}
			} else {
				values = values[:len(headers)]
			}
		}

		rec := types.NewRecord()
		for j, h := range headers {
			rec.Set(h, values[j])
		}
		records = append(records, rec)
	}

	return records
}
