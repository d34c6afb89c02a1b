// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

func change(table models.Table, kind models.EventKind, name string) models.ChangeEvent {
	return models.ChangeEvent{
		Schema: models.RealtimeSchema,
		Table:  table,
		Type:   kind,
		Record: models.Record{"id": int64(1), "name": name},
	}
}

func receive(t *testing.T, sub Subscription) models.ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change event")
		return models.ChangeEvent{}
	}
}

func TestMemoryBroker_DeliversToSubscribersOfTable(t *testing.T) {
	b := NewMemoryBroker(logger.Nop())
	ctx := context.Background()

	clients1, err := b.Subscribe(ctx, models.TableClients)
	require.NoError(t, err)
	clients2, err := b.Subscribe(ctx, models.TableClients)
	require.NoError(t, err)
	suppliers, err := b.Subscribe(ctx, models.TableSuppliers)
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, change(models.TableClients, models.EventInserted, "Ana")))

	assert.Equal(t, "Ana", receive(t, clients1).Record.Str("name"))
	assert.Equal(t, "Ana", receive(t, clients2).Record.Str("name"))
	assert.Empty(t, suppliers.Events())
}

func TestMemoryBroker_PublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	b := NewMemoryBroker(logger.Nop())
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, models.TableClients)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range subscriptionBuffer + 10 {
			_ = b.Publish(ctx, change(models.TableClients, models.EventUpdated, "x"))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
	assert.Len(t, sub.Events(), subscriptionBuffer)
}

func TestMemoryBroker_CloseSubscription(t *testing.T) {
	b := NewMemoryBroker(logger.Nop())
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, models.TableClients)
	require.NoError(t, err)
	require.Equal(t, 1, b.SubscriberCount(models.TableClients))

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, b.SubscriberCount(models.TableClients))
	_, ok := <-sub.Events()
	assert.False(t, ok)

	require.NoError(t, b.Publish(ctx, change(models.TableClients, models.EventDeleted, "Ana")))
}

func TestMemoryBroker_Close(t *testing.T) {
	b := NewMemoryBroker(logger.Nop())
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, models.TableSuppliers)
	require.NoError(t, err)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, ok := <-sub.Events()
	assert.False(t, ok)
	sub.Close()

	assert.ErrorIs(t, b.Publish(ctx, change(models.TableSuppliers, models.EventInserted, "x")), ErrClosed)
	_, err = b.Subscribe(ctx, models.TableSuppliers)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNew_WithoutRedisUsesMemory(t *testing.T) {
	b, err := New(context.Background(), config.Broker{}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryBroker{}, b)
}
