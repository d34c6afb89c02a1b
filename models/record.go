// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RecordIDField is the key under which every record stores its identifier.
const RecordIDField = "id"

// Record is a flat row as it travels over the wire: field name to a string,
// number, or nil value. Records never nest and never reference each other.
type Record map[string]any

// ID returns the record identifier. JSON numbers, Go integers and numeric
// strings are accepted.
func (r Record) ID() (int64, error) {
	raw, ok := r[RecordIDField]
	if !ok || raw == nil {
		return 0, ErrRecordWithoutID
	}

	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRecordWithoutID, err)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: unsupported id type %T", ErrRecordWithoutID, raw)
	}
}

// Str returns field as a string, or "" when it is missing or nil.
func (r Record) Str(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Without returns a copy of r with the given fields removed.
func (r Record) Without(fields ...string) Record {
	out := r.Clone()
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// DecodeRecord converts a wire record into a typed row by round-tripping it
// through its JSON form.
func DecodeRecord[T any](r Record) (T, error) {
	var row T

	payload, err := json.Marshal(r)
	if err != nil {
		return row, fmt.Errorf("encode record: %w", err)
	}
	if err = json.Unmarshal(payload, &row); err != nil {
		return row, fmt.Errorf("decode record: %w", err)
	}

	return row, nil
}

// AsRecord returns the record itself. It lets untyped synchronizers use the
// same decode hook as typed ones.
func AsRecord(r Record) (Record, error) {
	return r, nil
}
