// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"
)

// Query holds parameters for archive searches. Text terms use FTS5 syntax;
// the remaining fields are exact-match structured filters that compose with
// the text search.
type Query struct {
	// Text is the FTS5 full-text search string over report bodies.
	Text string

	// MRN filters by patient record number.
	MRN string

	// CaseName filters by pathology case name.
	CaseName string

	// SpecimenSource filters by specimen source.
	SpecimenSource string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q Query) IsEmpty() bool {
	return q.Text == "" && q.MRN == "" && q.CaseName == "" && q.SpecimenSource == ""
}

// Report is one archived consolidated report.
type Report struct {
	ID             string `json:"id"`
	MRN            string `json:"mrn"`
	Date           string `json:"date"`
	LabOrderEpicID string `json:"lab_order_id"`
	CaseName       string `json:"case_name"`
	SpecimenSource string `json:"specimen_source"`
	ValueText      string `json:"value_text"`
}

// Search queries the archive with optional full-text search and structured
// filters. Full-text queries rank by FTS relevance; structured-only queries
// sort by MRN and date.
func (s *Store) Search(ctx context.Context, q Query) ([]Report, error) {
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = q.Text != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.id, r.mrn, r.date, r.lab_order_id, r.case_name, r.specimen_source, r.value_text
			FROM reports_fts
			JOIN reports r ON r.rowid = reports_fts.rowid
			WHERE reports_fts MATCH ?`)
		args = append(args, q.Text)
	} else {
		qb.WriteString(
			`SELECT r.id, r.mrn, r.date, r.lab_order_id, r.case_name, r.specimen_source, r.value_text
			FROM reports r
			WHERE 1=1`)
	}

	if q.MRN != "" {
		qb.WriteString(` AND r.mrn = ?`)
		args = append(args, q.MRN)
	}
	if q.CaseName != "" {
		qb.WriteString(` AND r.case_name = ?`)
		args = append(args, q.CaseName)
	}
	if q.SpecimenSource != "" {
		qb.WriteString(` AND r.specimen_source = ?`)
		args = append(args, q.SpecimenSource)
	}

	if useFTS {
		qb.WriteString(` ORDER BY reports_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.mrn, r.date`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var results []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(
			&r.ID, &r.MRN, &r.Date, &r.LabOrderEpicID,
			&r.CaseName, &r.SpecimenSource, &r.ValueText,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
