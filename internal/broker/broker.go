// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package broker fans committed row changes out to the realtime
// connections of the server. A single server instance can use the in-process
// [MemoryBroker]; several instances behind a load balancer share changes
// through [RedisBroker].
package broker

import (
	"context"
	"errors"

	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

//go:generate mockgen -source=broker.go -destination=../mock/broker_mock.go -package=mock

// subscriptionBuffer is the number of events a slow subscriber may lag
// behind before further events are dropped for it.
const subscriptionBuffer = 64

// ErrClosed is returned by Publish and Subscribe after Close.
var ErrClosed = errors.New("broker is closed")

// Broker publishes change events per table.
type Broker interface {
	Publish(ctx context.Context, event models.ChangeEvent) error
	Subscribe(ctx context.Context, table models.Table) (Subscription, error)
	Close() error
}

// Subscription delivers the events of one table until closed.
type Subscription interface {
	// Events is closed after Close or when the broker shuts down.
	Events() <-chan models.ChangeEvent
	Close()
}

// New returns a [RedisBroker] when cfg names a Redis address and a
// [MemoryBroker] otherwise.
func New(ctx context.Context, cfg config.Broker, log *logger.Logger) (Broker, error) {
	if cfg.RedisAddress == "" {
		log.Info().Msg("using in-process change broker")
		return NewMemoryBroker(log), nil
	}

	return NewRedisBroker(ctx, cfg, log)
}
