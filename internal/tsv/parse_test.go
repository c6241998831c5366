// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsv

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meddata/noteconv/pkg/types"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantCount   int
		wantWarning string
	}{
		{
			name:      "well-formed rows are lossless",
			lines:     []string{"MRN\tdate\tValueText", "1\t2020-01-01\tHello", "2\t2020-01-02\tWorld"},
			wantCount: 2,
		},
		{
			name:        "header only",
			lines:       []string{"MRN\tdate"},
			wantWarning: "fewer than 2 lines",
		},
		{
			name:        "empty input",
			lines:       nil,
			wantWarning: "fewer than 2 lines",
		},
		{
			name:        "short row pads with empty strings",
			lines:       []string{"a\tb\tc", "1\t2"},
			wantCount:   1,
			wantWarning: "line 2 has 3 headers but 2 values",
		},
		{
			name:        "long row truncates extras",
			lines:       []string{"a\tb", "1\t2\t3\t4"},
			wantCount:   1,
			wantWarning: "line 2 has 2 headers but 4 values",
		},
		{
			name:      "blank lines are skipped silently",
			lines:     []string{"a\tb", "1\t2", "   ", "", "\t", "3\t4"},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warnings bytes.Buffer
			records := ParseLines("test.txt", tt.lines, &warnings)

			if len(records) != tt.wantCount {
				t.Errorf("got %d records, want %d", len(records), tt.wantCount)
			}
			if tt.wantWarning == "" {
				if warnings.Len() > 0 {
					t.Errorf("unexpected warnings: %q", warnings.String())
				}
			} else if !strings.Contains(warnings.String(), tt.wantWarning) {
				t.Errorf("warnings %q do not contain %q", warnings.String(), tt.wantWarning)
			}
		})
	}
}

func TestParseLinesFieldValues(t *testing.T) {
	var warnings bytes.Buffer
	records := ParseLines("a.txt",
		[]string{"MRN\tdate\tValueText", "1\t2020-01-01\tHello"}, &warnings)

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]

	want := map[string]string{"MRN": "1", "date": "2020-01-01", "ValueText": "Hello"}
	for k, v := range want {
		if got := rec.Value(k); got != v {
			t.Errorf("field %s = %q, want %q", k, got, v)
		}
	}
	if got := rec.Keys(); len(got) != 3 || got[0] != "MRN" || got[1] != "date" || got[2] != "ValueText" {
		t.Errorf("keys = %v, want header order", got)
	}
}

func TestParseLinesPaddedRowFieldSet(t *testing.T) {
	var warnings bytes.Buffer
	records := ParseLines("a.txt", []string{"a\tb\tc\td", "1"}, &warnings)

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Len() != 4 {
		t.Fatalf("record has %d fields, want 4", rec.Len())
	}
	if rec.Value("a") != "1" {
		t.Errorf("field a = %q, want %q", rec.Value("a"), "1")
	}
	for _, k := range []string{"b", "c", "d"} {
		if v, ok := rec.Get(k); !ok || v != "" {
			t.Errorf("field %s = (%q, %v), want empty string present", k, v, ok)
		}
	}
}

func TestParseLinesDuplicateHeaderLastValueWins(t *testing.T) {
	var warnings bytes.Buffer
	records := ParseLines("a.txt", []string{"a\tb\ta", "1\t2\t3"}, &warnings)

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Len() != 2 {
		t.Errorf("record has %d fields, want 2 (duplicate header collapses)", rec.Len())
	}
	if rec.Value("a") != "3" {
		t.Errorf("field a = %q, want last value %q", rec.Value("a"), "3")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	content := "MRN\tdate\tValueText\n1\t2020-01-01\tHello\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var warnings bytes.Buffer
	res := ParseFile(path, &warnings)

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if got := res.Records[0].Value(types.FieldValueText); got != "Hello" {
		t.Errorf("ValueText = %q, want %q", got, "Hello")
	}
}

func TestParseFileMissing(t *testing.T) {
	var warnings bytes.Buffer
	res := ParseFile(filepath.Join(t.TempDir(), "nope.txt"), &warnings)

	if res.Err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(res.Records) != 0 {
		t.Errorf("got %d records, want 0", len(res.Records))
	}
	if !strings.Contains(warnings.String(), "Error processing nope.txt") {
		t.Errorf("warnings %q do not name the file", warnings.String())
	}
}

func TestParseFileInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte{'a', '\t', 'b', '\n', 0xff, 0xfe, '\n'}, 0o644); err != nil {
		t.Fatal(err)
	}

	var warnings bytes.Buffer
	res := ParseFile(path, &warnings)

	if res.Err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(warnings.String(), "Error processing bad.txt") {
		t.Errorf("warnings %q do not name the file", warnings.String())
	}
}
