// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists consolidated pathology reports in a local SQLite
// archive with full-text search over the report body. The archive is an
// optional companion to the file converter: ingest is idempotent, so
// re-running over the same exports updates changed reports in place.
//
// The full-text index uses SQLite's FTS5 extension, so this package must be
// built with the sqlite_fts5 tag (the mage Build and Test targets pass it).
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meddata/noteconv/pkg/types"
)

const dbFile = "reports.db"

// Store manages the report archive database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the archive database at dbDir/reports.db and
// creates the schema if it does not exist.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DBDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DBDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			mrn TEXT NOT NULL,
			date TEXT,
			lab_order_id TEXT,
			case_name TEXT,
			specimen_source TEXT,
			value_text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_mrn ON reports(mrn)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_case ON reports(case_name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='reports_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE reports_fts USING fts5(value_text, content=reports, content_rowid=rowid)`,
			`CREATE TRIGGER reports_ai AFTER INSERT ON reports BEGIN
				INSERT INTO reports_fts(rowid, value_text) VALUES (new.rowid, new.value_text);
			END`,
			`CREATE TRIGGER reports_ad AFTER DELETE ON reports BEGIN
				INSERT INTO reports_fts(reports_fts, rowid, value_text) VALUES('delete', old.rowid, old.value_text);
			END`,
			`CREATE TRIGGER reports_au AFTER UPDATE ON reports BEGIN
				INSERT INTO reports_fts(reports_fts, rowid, value_text) VALUES('delete', old.rowid, old.value_text);
				INSERT INTO reports_fts(rowid, value_text) VALUES (new.rowid, new.value_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an archive ingest run.
type IngestSummary struct {
	Stored  int
	Updated int
	Skipped int
}

// Total returns the number of reports processed.
func (s IngestSummary) Total() int {
	return s.Stored + s.Updated + s.Skipped
}

// Ingest writes consolidated report records into the archive. Each report
// gets a deterministic id derived from its identity fields, so re-ingesting
// the same export is idempotent: unchanged reports are skipped, changed
// report text is updated in place. Per-report status lines go to w.
func (s *Store) Ingest(ctx context.Context, records []*types.Record, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		key := types.GroupKeyOf(rec)
		id := reportID(key)
		text := rec.Value(types.FieldValueText)

		var storedText string
		err := s.db.QueryRowContext(ctx,
			`SELECT value_text FROM reports WHERE id = ?`, id,
		).Scan(&storedText)

		switch {
		case err == nil && storedText == text:
			fmt.Fprintf(w, "skipped %s\n", describe(key))
			summary.Skipped++

		case err == nil:
			if _, err := s.db.ExecContext(ctx,
				`UPDATE reports SET value_text = ? WHERE id = ?`, text, id,
			); err != nil {
				return summary, fmt.Errorf("updating report %s: %w", id, err)
			}
			fmt.Fprintf(w, "updated %s\n", describe(key))
			summary.Updated++

		case err == sql.ErrNoRows:
			if _, err := s.db.ExecContext(ctx,
				`INSERT INTO reports (id, mrn, date, lab_order_id, case_name, specimen_source, value_text)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, key.MRN, key.Date, key.LabOrderEpicID, key.CaseName, key.SpecimenSource, text,
			); err != nil {
				return summary, fmt.Errorf("inserting report %s: %w", id, err)
			}
			fmt.Fprintf(w, "stored  %s\n", describe(key))
			summary.Stored++

		default:
			return summary, fmt.Errorf("looking up report %s: %w", id, err)
		}
	}

	fmt.Fprintf(w, "\nstored: %d, updated: %d, skipped: %d\n",
		summary.Stored, summary.Updated, summary.Skipped)
	return summary, nil
}

// reportID derives a stable identifier from the report's identity fields.
// Fields are hashed with length prefixes so adjacent values cannot collide.
func reportID(key types.GroupKey) string {
	h := sha256.New()
	for _, part := range []string{key.MRN, key.Date, key.LabOrderEpicID, key.CaseName, key.SpecimenSource} {
		fmt.Fprintf(h, "%d:%s;", len(part), part)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// describe renders a short human-readable tag for status lines.
func describe(key types.GroupKey) string {
	name := key.CaseName
	if name == "" {
		name = key.LabOrderEpicID
	}
	if name == "" {
		return fmt.Sprintf("MRN %s %s", key.MRN, key.Date)
	}
	return fmt.Sprintf("MRN %s %s (%s)", key.MRN, key.Date, name)
}
