// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncState is the lifecycle state of a list synchronizer.
type SyncState int

const (
	// SyncLoading means no fetch has completed yet.
	SyncLoading SyncState = iota
	// SyncReady means the last fetch completed and none is pending.
	SyncReady
	// SyncRefreshing means a change arrived and a refetch is in flight.
	// The previous snapshot is still the one on display.
	SyncRefreshing
)

// String returns a lower-case label for logs and status lines.
func (s SyncState) String() string {
	switch s {
	case SyncLoading:
		return "loading"
	case SyncReady:
		return "ready"
	case SyncRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}
