// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package listsync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/models"
)

// fakeGateway is a scriptable RowGateway. fetch decides what each FetchAll
// call returns and may block to keep a fetch in flight.
type fakeGateway struct {
	fetch         func(ctx context.Context, call int) ([]models.Record, error)
	subscribeErr  error
	subscribeGate chan struct{}

	mu           sync.Mutex
	fetches      int
	subscribes   int
	unsubscribes int
	kinds        []models.EventKind
	handler      func(models.ChangeEvent)
	subscribed   chan struct{}
}

type fakeHandle struct {
	table models.Table
	kinds []models.EventKind
}

func (h *fakeHandle) Table() models.Table       { return h.table }
func (h *fakeHandle) Kinds() []models.EventKind { return h.kinds }

func newFakeGateway(fetch func(ctx context.Context, call int) ([]models.Record, error)) *fakeGateway {
	return &fakeGateway{fetch: fetch, subscribed: make(chan struct{})}
}

// staticRows returns a fetch function that always yields rows.
func staticRows(rows ...models.Record) func(context.Context, int) ([]models.Record, error) {
	return func(context.Context, int) ([]models.Record, error) { return rows, nil }
}

func (g *fakeGateway) FetchAll(ctx context.Context, _ models.Table) ([]models.Record, error) {
	g.mu.Lock()
	g.fetches++
	call := g.fetches
	g.mu.Unlock()
	return g.fetch(ctx, call)
}

func (g *fakeGateway) Count(context.Context, models.Table) (int64, error) { return 0, nil }

func (g *fakeGateway) Insert(context.Context, models.Table, models.Record) error { return nil }

func (g *fakeGateway) Update(context.Context, models.Table, int64, models.Record) error { return nil }

func (g *fakeGateway) Delete(context.Context, models.Table, int64) error { return nil }

func (g *fakeGateway) Subscribe(_ context.Context, table models.Table, kinds []models.EventKind, handler func(models.ChangeEvent)) (adapter.SubscriptionHandle, error) {
	g.mu.Lock()
	g.subscribes++
	if g.subscribes == 1 {
		close(g.subscribed)
	}
	err := g.subscribeErr
	gate := g.subscribeGate
	g.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.kinds = kinds
	g.handler = handler
	g.mu.Unlock()
	return &fakeHandle{table: table, kinds: kinds}, nil
}

func (g *fakeGateway) Unsubscribe(adapter.SubscriptionHandle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.unsubscribes++
}

// emit pushes a change notification through the registered handler.
func (g *fakeGateway) emit(t *testing.T, kind models.EventKind) {
	t.Helper()
	g.mu.Lock()
	h := g.handler
	g.mu.Unlock()
	if h == nil {
		t.Fatal("emit before subscribe")
	}
	h(models.ChangeEvent{Type: kind})
}

func (g *fakeGateway) waitSubscribed(t *testing.T) {
	t.Helper()
	select {
	case <-g.subscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("synchronizer did not subscribe")
	}
}

func (g *fakeGateway) counts() (fetches, subscribes, unsubscribes int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetches, g.subscribes, g.unsubscribes
}

// collector records snapshots in delivery order.
type collector[T any] struct {
	ch chan []T
}

func newCollector[T any]() *collector[T] {
	return &collector[T]{ch: make(chan []T, 64)}
}

func (c *collector[T]) callback(rows []T) { c.ch <- rows }

func (c *collector[T]) next(t *testing.T) []T {
	t.Helper()
	select {
	case rows := <-c.ch:
		return rows
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
		return nil
	}
}

func (c *collector[T]) none(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case rows := <-c.ch:
		t.Fatalf("unexpected snapshot %v", rows)
	case <-time.After(within):
	}
}
