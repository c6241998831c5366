// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data types shared across the noteconv pipeline
// stages: ordered records, merge keys, and stage configuration.
package types

import (
	"bytes"
	"encoding/json"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Field names used by the Epic pathology export format. The exporter emits
// these exact header strings, including the lowercase "date".
const (
	FieldMRN            = "MRN"
	FieldDate           = "date"
	FieldLabOrderEpicID = "LabOrderEpicId"
	FieldCaseName       = "CaseName"
	FieldSpecimenSource = "SpecimenSource"
	FieldLine           = "ConcatenationLine"
	FieldSubline        = "ConcatenationSubLine"
	FieldValueText      = "ValueText"
)

// Record is one logical data row: an ordered mapping from field name to
// field value. Keys iterate in first-seen insertion order, which keeps
// output columns stable across files.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores value under key. A repeated key overwrites the previous value
// but keeps the position of its first occurrence; duplicate headers within
// one file therefore resolve to the last value in the row.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it is present.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or the empty string if absent.
func (r *Record) Value(key string) string {
	return r.values[key]
}

// Delete removes key from the record. Absent keys are a no-op.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in first-seen order. The returned slice is
// a copy; mutating it does not affect the record.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	return len(r.keys)
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	c := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]string, len(r.values)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// MarshalJSON renders the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSONString(&buf, r.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeJSONString writes s as a JSON string without HTML escaping, so
// clinical text containing <, >, & survives verbatim.
func encodeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder appends a newline after every value.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// MarshalYAML renders the record as a YAML mapping in field order. Values
// are tagged as strings so numeric-looking text round-trips unchanged.
func (r *Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.values[k]},
		)
	}
	return node, nil
}

// GroupKey is the composite identity that decides which rows belong to the
// same logical pathology report. Missing fields compare as empty strings;
// there is no normalization.
type GroupKey struct {
	MRN            string
	Date           string
	LabOrderEpicID string
	CaseName       string
	SpecimenSource string
}

// GroupKeyOf derives the merge key from a record's identity fields.
func GroupKeyOf(r *Record) GroupKey {
	return GroupKey{
		MRN:            r.Value(FieldMRN),
		Date:           r.Value(FieldDate),
		LabOrderEpicID: r.Value(FieldLabOrderEpicID),
		CaseName:       r.Value(FieldCaseName),
		SpecimenSource: r.Value(FieldSpecimenSource),
	}
}

// SortKey orders fragments within one report group.
type SortKey struct {
	Line    int
	Subline int
}

// Less reports whether k orders before other, comparing Line first.
func (k SortKey) Less(other SortKey) bool {
	if k.Line != other.Line {
		return k.Line < other.Line
	}
	return k.Subline < other.Subline
}

// SortKeyOf parses the ordering fields of a record. A missing field counts
// as zero, but if either present value fails to parse the whole key
// collapses to (0,0). Zero sorts first and can interleave with rows whose
// stated line number is a real zero; that ambiguity is part of the format.
func SortKeyOf(r *Record) SortKey {
	lineStr, ok := r.Get(FieldLine)
	if !ok {
		lineStr = "0"
	}
	sublineStr, ok := r.Get(FieldSubline)
	if !ok {
		sublineStr = "0"
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return SortKey{}
	}
	subline, err := strconv.Atoi(sublineStr)
	if err != nil {
		return SortKey{}
	}
	return SortKey{Line: line, Subline: subline}
}
