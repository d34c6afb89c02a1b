// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
	"time"
)

// EventKind is the kind of row change a subscription can be notified about.
type EventKind string

const (
	// EventInserted is emitted after a row is created.
	EventInserted EventKind = "INSERT"
	// EventUpdated is emitted after a row is modified.
	EventUpdated EventKind = "UPDATE"
	// EventDeleted is emitted after a row is removed.
	EventDeleted EventKind = "DELETE"
)

// AllEventKinds returns inserted, updated and deleted in that order.
func AllEventKinds() []EventKind {
	return []EventKind{EventInserted, EventUpdated, EventDeleted}
}

// ParseEventKind accepts the wire names case-insensitively.
func ParseEventKind(raw string) (EventKind, error) {
	k := EventKind(strings.ToUpper(strings.TrimSpace(raw)))
	switch k {
	case EventInserted, EventUpdated, EventDeleted:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEventKind, raw)
}

// ContainsEventKind reports whether kinds includes k. An empty set matches
// every kind.
func ContainsEventKind(kinds []EventKind, k EventKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ChangeEvent describes one committed row change. Record holds the new row
// (inserted, updated) and OldRecord the previous one (updated, deleted).
type ChangeEvent struct {
	Schema          string    `json:"schema"`
	Table           Table     `json:"table"`
	Type            EventKind `json:"type"`
	Record          Record    `json:"record,omitempty"`
	OldRecord       Record    `json:"old_record,omitempty"`
	CommitTimestamp time.Time `json:"commit_timestamp"`
}
