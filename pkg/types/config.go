// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings shared by the notes and reports conversion
// commands. Values come from the config file or environment and act as
// flag defaults; explicit flags win.
type ConvertConfig struct {
	// Pattern is the glob used to select input files (default "*.txt").
	Pattern string `json:"pattern" yaml:"pattern"`

	// Compact selects single-line JSON output instead of 2-space indentation.
	Compact bool `json:"compact" yaml:"compact"`
}

// ArchiveConfig holds settings for the SQLite report archive.
type ArchiveConfig struct {
	// DBDir is the directory holding reports.db (default "archive").
	DBDir string `json:"db_dir" yaml:"db_dir"`

	// MaxResults caps query result count (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
