// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/bizdesk/models"
)

// Synchronizer is the part of listsync.Synchronizer a SyncWorker drives.
type Synchronizer[T any] interface {
	Start(ctx context.Context, table models.Table, onSnapshot func([]T)) error
	Stop()
}

// SyncWorker binds a synchronizer to a table and a snapshot callback so it
// can be managed as a [Worker].
type SyncWorker[T any] struct {
	sync       Synchronizer[T]
	table      models.Table
	onSnapshot func([]T)
}

// NewSyncWorker returns a worker that starts s on table with onSnapshot.
func NewSyncWorker[T any](s Synchronizer[T], table models.Table, onSnapshot func([]T)) *SyncWorker[T] {
	return &SyncWorker[T]{sync: s, table: table, onSnapshot: onSnapshot}
}

func (w *SyncWorker[T]) Start(ctx context.Context) error {
	return w.sync.Start(ctx, w.table, w.onSnapshot)
}

func (w *SyncWorker[T]) Stop() {
	w.sync.Stop()
}
