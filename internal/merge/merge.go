// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge consolidates fragmented pathology report rows. Epic exports
// split long report text across rows that share identity fields and carry a
// two-level sequence number; merging reassembles each report into one record.
package merge

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/meddata/noteconv/pkg/types"
)

// Merge groups records by their identity fields and consolidates each group
// into a single record. Groups appear in the order their key is first seen.
// Within a group, members sort by (ConcatenationLine, ConcatenationSubLine)
// ascending, stable on ties; the merged record is a copy of the first member
// in sort order with ValueText replaced by the newline join of every member's
// ValueText. The two sequence fields are removed from the result. Where
// members disagree on any other field, the first member's value wins.
//
// A progress line is written to w.
func Merge(records []*types.Record, w io.Writer) []*types.Record {
	var order []types.GroupKey
	groups := make(map[types.GroupKey][]*types.Record)

	for _, rec := range records {
		key := types.GroupKeyOf(rec)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	fmt.Fprintf(w, "Merging %d records into %d consolidated reports...\n",
		len(records), len(groups))

	merged := make([]*types.Record, 0, len(groups))
	for _, key := range order {
		group := groups[key]

		sort.SliceStable(group, func(i, j int) bool {
			return types.SortKeyOf(group[i]).Less(types.SortKeyOf(group[j]))
		})

		texts := make([]string, len(group))
		for i, rec := range group {
			texts[i] = rec.Value(types.FieldValueText)
		}

		out := group[0].Clone()
		out.Set(types.FieldValueText, strings.Join(texts, "\n"))
		out.Delete(types.FieldLine)
		out.Delete(types.FieldSubline)

		merged = append(merged, out)
	}

	return merged
}
