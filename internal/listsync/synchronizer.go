// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package listsync

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

// Synchronizer mirrors one table as a []T.
//
// Every fetch runs in its own goroutine; fetches are neither coalesced nor
// cancelled by later notifications, so their results may arrive out of
// order. Deliveries to the callback are serialised.
type Synchronizer[T any] struct {
	gateway adapter.RowGateway
	decode  func(models.Record) (T, error)
	logger  *logger.Logger
	settings

	// mu guards the fields below.
	mu         sync.Mutex
	table      models.Table
	state      models.SyncState
	started    bool
	stopped    bool
	pending    int
	handle     adapter.SubscriptionHandle
	snapshot   []T
	onSnapshot func([]T)

	// deliverMu is held for the duration of every callback. Stop takes it
	// once after setting stopped, so no callback runs after Stop returns.
	deliverMu sync.Mutex
}

// New returns an idle synchronizer. decode converts one fetched record into a
// row; records it rejects are left out of the snapshot.
func New[T any](gateway adapter.RowGateway, decode func(models.Record) (T, error), log *logger.Logger, opts ...Option) *Synchronizer[T] {
	s := &Synchronizer[T]{
		gateway:  gateway,
		decode:   decode,
		logger:   log.WithComponent("listsync"),
		settings: defaultSettings(),
		state:    models.SyncLoading,
	}
	for _, opt := range opts {
		opt(&s.settings)
	}
	return s
}

// NewRecords returns a synchronizer of raw records.
func NewRecords(gateway adapter.RowGateway, log *logger.Logger, opts ...Option) *Synchronizer[models.Record] {
	return New(gateway, models.AsRecord, log, opts...)
}

// Start fetches table in the background and returns immediately.
//
// The first result is passed to onSnapshot; a failed fetch is logged and
// delivered as an empty slice. Once it is delivered the synchronizer
// subscribes to changes and refetches on each one. ctx bounds every fetch
// and the subscription.
func (s *Synchronizer[T]) Start(ctx context.Context, table models.Table, onSnapshot func([]T)) error {
	if !table.Valid() {
		return fmt.Errorf("start: %w: %q", models.ErrUnknownTable, table)
	}
	if onSnapshot == nil {
		return ErrNilCallback
	}

	s.mu.Lock()
	switch {
	case s.stopped:
		s.mu.Unlock()
		return ErrStopped
	case s.started:
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.table = table
	s.onSnapshot = onSnapshot
	s.state = models.SyncLoading
	s.pending = 1
	s.logger = &logger.Logger{Logger: s.logger.With().Str("table", table.String()).Logger()}
	log := s.logger
	s.mu.Unlock()

	log.Debug().Msg("starting")

	go func() {
		s.refresh(ctx)
		s.subscribe(ctx)
	}()

	return nil
}

// Stop releases the change subscription. No callback runs after Stop
// returns, including for fetches still in flight. Stop is idempotent, may be
// called before Start and must not be called from the snapshot callback.
func (s *Synchronizer[T]) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	handle := s.handle
	s.handle = nil
	log := s.logger
	s.mu.Unlock()

	if handle != nil {
		s.gateway.Unsubscribe(handle)
	}

	// waits for a callback that is already running
	s.deliverMu.Lock()
	s.deliverMu.Unlock() //nolint:staticcheck

	log.Debug().Msg("stopped")
}

// State reports Loading until the first snapshot, then Refreshing while any
// fetch is pending and Ready otherwise.
func (s *Synchronizer[T]) State() models.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Table returns the table given to Start, or "" before Start.
func (s *Synchronizer[T]) Table() models.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

// Snapshot returns a copy of the most recently delivered rows.
func (s *Synchronizer[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.snapshot)
}

// Subscribed reports whether a change subscription is currently held.
func (s *Synchronizer[T]) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

func (s *Synchronizer[T]) subscribe(ctx context.Context) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	table := s.table
	s.mu.Unlock()

	handle, err := s.gateway.Subscribe(ctx, table, s.kinds, func(event models.ChangeEvent) {
		s.onChange(ctx, event)
	})
	if err != nil {
		s.metrics.ObserveSubscriptionError(table.String())
		s.logger.Error().Err(err).Msg("subscription failed, live updates disabled")
		return
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.gateway.Unsubscribe(handle)
		return
	}
	s.handle = handle
	s.mu.Unlock()

	s.logger.Debug().Msg("subscribed")
}

func (s *Synchronizer[T]) onChange(ctx context.Context, event models.ChangeEvent) {
	s.metrics.ObserveChange(s.table.String(), string(event.Type))

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending++
	s.state = models.SyncRefreshing
	s.mu.Unlock()

	s.logger.Debug().Str("type", string(event.Type)).Msg("change received, refetching")
	go s.refresh(ctx)
}

// refresh performs one full fetch and delivers its result.
func (s *Synchronizer[T]) refresh(ctx context.Context) {
	records, err := s.gateway.FetchAll(ctx, s.table)
	s.metrics.ObserveFetch(s.table.String(), err)

	rows := make([]T, 0, len(records))
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch failed, delivering empty snapshot")
	} else {
		rows = s.decodeAll(records)
	}

	s.deliver(rows)
}

func (s *Synchronizer[T]) decodeAll(records []models.Record) []T {
	rows := make([]T, 0, len(records))
	for _, record := range records {
		if s.limit > 0 && len(rows) == s.limit {
			break
		}

		row, err := s.decode(record)
		if err != nil {
			id, _ := record.ID()
			s.logger.Warn().Err(err).Int64("id", id).Msg("row skipped")
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Synchronizer[T]) deliver(rows []T) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	s.pending--
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if s.pending > 0 {
		s.state = models.SyncRefreshing
	} else {
		s.state = models.SyncReady
	}
	s.snapshot = slices.Clone(rows)
	onSnapshot := s.onSnapshot
	s.mu.Unlock()

	s.metrics.ObserveSnapshot(s.table.String(), len(rows))
	onSnapshot(rows)
}
