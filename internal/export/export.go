// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes record sequences to CSV, JSON, or YAML files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/meddata/noteconv/pkg/types"
)

// Fieldnames returns the union of field names across all records, ordered by
// first appearance over the whole sequence. Tabular output uses this as the
// column set so every row has the same shape.
func Fieldnames(records []*types.Record) []string {
	var names []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if !seen[k] {
				names = append(names, k)
				seen[k] = true
			}
		}
	}
	return names
}

// WriteCSV writes records to path as comma-separated values with a header
// row. Records missing a column write an empty cell; embedded commas,
// quotes, and newlines are quoted by the encoder.
func WriteCSV(records []*types.Record, path string, w io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	fields := Fieldnames(records)

	cw := csv.NewWriter(f)
	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	row := make([]string, len(fields))
	for _, rec := range records {
		for i, name := range fields {
			row[i] = rec.Value(name)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	fmt.Fprintf(w, "CSV written to %s\n", path)
	return nil
}

// WriteJSON writes records to path as a JSON array of objects, each object
// in its record's own field order. pretty selects 2-space indentation over
// the compact single-line form. Non-ASCII text is left unescaped.
func WriteJSON(records []*types.Record, path string, pretty bool, w io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	fmt.Fprintf(w, "JSON written to %s\n", path)
	return nil
}

// WriteYAML writes records to path as a YAML sequence of mappings in record
// field order.
func WriteYAML(records []*types.Record, path string, w io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	if err := enc.Encode(records); err != nil {
		enc.Close()
		return fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing YAML: %w", err)
	}

	fmt.Fprintf(w, "YAML written to %s\n", path)
	return nil
}
