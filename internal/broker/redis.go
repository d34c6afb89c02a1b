// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

const redisDialTimeout = 3 * time.Second

// RedisBroker publishes change events as JSON on one Redis pub/sub channel
// per table, so that every server instance sees every change.
type RedisBroker struct {
	client *redis.Client
	prefix string
	logger *logger.Logger
}

// NewRedisBroker connects to cfg.RedisAddress and pings it.
func NewRedisBroker(ctx context.Context, cfg config.Broker, log *logger.Logger) (*RedisBroker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddress,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: redisDialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisBroker").Str("addr", cfg.RedisAddress).Msg("error connecting to redis")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	log.Info().Str("func", "NewRedisBroker").Str("addr", cfg.RedisAddress).Msg("connected to redis successfully")

	prefix := cfg.ChannelPrefix
	if prefix == "" {
		prefix = config.DefaultChannelPrefix
	}

	return &RedisBroker{client: client, prefix: prefix, logger: log}, nil
}

// Channel returns the pub/sub channel that carries the changes of table.
func (b *RedisBroker) Channel(table models.Table) string {
	return channelName(b.prefix, table)
}

func channelName(prefix string, table models.Table) string {
	return prefix + ":changes:" + table.String()
}

func (b *RedisBroker) Publish(ctx context.Context, event models.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error encoding change event: %w", err)
	}

	if err = b.client.Publish(ctx, b.Channel(event.Table), payload).Err(); err != nil {
		return fmt.Errorf("error publishing change event: %w", err)
	}

	return nil
}

// Subscribe waits for Redis to confirm the subscription before returning.
func (b *RedisBroker) Subscribe(ctx context.Context, table models.Table) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, b.Channel(table))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("error subscribing to %s: %w", b.Channel(table), err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan models.ChangeEvent, subscriptionBuffer),
		done:   make(chan struct{}),
		logger: b.logger,
	}
	go sub.forward(pubsub.Channel())

	return sub, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan models.ChangeEvent
	done   chan struct{}
	once   sync.Once
	logger *logger.Logger
}

func (s *redisSubscription) Events() <-chan models.ChangeEvent {
	return s.events
}

// forward decodes messages until the pubsub channel is closed.
func (s *redisSubscription) forward(messages <-chan *redis.Message) {
	defer close(s.done)
	defer close(s.events)

	for msg := range messages {
		var event models.ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			s.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("skipping undecodable change event")
			continue
		}

		select {
		case s.events <- event:
		default:
			s.logger.Warn().Str("channel", msg.Channel).Msg("subscriber buffer full, change event dropped")
		}
	}
}

func (s *redisSubscription) Close() {
	s.once.Do(func() {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("error closing redis subscription")
		}
		<-s.done
	})
}
