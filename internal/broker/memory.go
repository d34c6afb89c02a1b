// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"context"
	"sync"

	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

// MemoryBroker keeps subscribers in a map per table. Publish never blocks:
// a subscriber whose buffer is full misses the event.
type MemoryBroker struct {
	mu     sync.RWMutex
	subs   map[models.Table]map[*memorySubscription]struct{}
	closed bool
	logger *logger.Logger
}

// NewMemoryBroker creates an empty in-process broker.
func NewMemoryBroker(log *logger.Logger) *MemoryBroker {
	return &MemoryBroker{
		subs:   make(map[models.Table]map[*memorySubscription]struct{}),
		logger: log,
	}
}

func (b *MemoryBroker) Publish(_ context.Context, event models.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	for sub := range b.subs[event.Table] {
		select {
		case sub.events <- event:
		default:
			b.logger.Warn().
				Str("table", event.Table.String()).
				Str("type", string(event.Type)).
				Msg("subscriber buffer full, change event dropped")
		}
	}

	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, table models.Table) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	sub := &memorySubscription{
		broker: b,
		table:  table,
		events: make(chan models.ChangeEvent, subscriptionBuffer),
	}
	if b.subs[table] == nil {
		b.subs[table] = make(map[*memorySubscription]struct{})
	}
	b.subs[table][sub] = struct{}{}

	return sub, nil
}

// Close closes every open subscription.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for table, subs := range b.subs {
		for sub := range subs {
			close(sub.events)
		}
		delete(b.subs, table)
	}

	return nil
}

// SubscriberCount returns the number of open subscriptions on table.
func (b *MemoryBroker) SubscriberCount(table models.Table) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs[table])
}

type memorySubscription struct {
	broker *MemoryBroker
	table  models.Table
	events chan models.ChangeEvent
}

func (s *memorySubscription) Events() <-chan models.ChangeEvent {
	return s.events
}

func (s *memorySubscription) Close() {
	b := s.broker
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subs[s.table]
	if !ok {
		return
	}
	if _, ok = subs[s]; !ok {
		return
	}

	delete(subs, s)
	close(s.events)
	if len(subs) == 0 {
		delete(b.subs, s.table)
	}
}
