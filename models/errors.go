// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

var (
	// ErrUnknownTable is returned when a table name is not one of [Tables].
	ErrUnknownTable = errors.New("unknown table")

	// ErrRecordWithoutID is returned when a record carries no usable "id".
	ErrRecordWithoutID = errors.New("record has no id")

	// ErrUnknownEventKind is returned when a change event kind cannot be parsed.
	ErrUnknownEventKind = errors.New("unknown event kind")
)
