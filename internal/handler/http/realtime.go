// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/broker"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/utils"
	"github.com/MKhiriev/bizdesk/models"
)

const (
	realtimeWriteTimeout = 5 * time.Second
	realtimeReadLimit    = 64 << 10
)

// realtime upgrades an authenticated request to a websocket that speaks the
// Phoenix channel framing. Each joined topic is backed by one broker
// subscription; changes are forwarded as postgres_changes frames.
func (h *Handler) realtime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		var err error
		if tokenString, err = tokenFromHeader(r.Header.Get("Authorization")); err != nil {
			log.Warn().Err(err).Msg("realtime connection without token")
			utils.WriteError(w, app.MsgMissingToken, http.StatusUnauthorized)
			return
		}
	}

	userID, ok := h.authenticate(w, r, tokenString)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered the request
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	rc := &realtimeConn{
		conn:   conn,
		broker: h.broker,
		topics: make(map[string]broker.Subscription),
		logger: log,
	}

	h.metrics.RealtimeConnected()
	defer h.metrics.RealtimeDisconnected()

	log.Debug().Int64("id", userID).Msg("realtime connection opened")
	rc.serve(ctx)
	log.Debug().Int64("id", userID).Msg("realtime connection closed")
}

type realtimeConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	broker broker.Broker

	mu     sync.Mutex
	topics map[string]broker.Subscription
	wg     sync.WaitGroup

	logger *logger.Logger
}

// serve reads frames until the client goes away, then releases every
// subscription and waits for the forwarders.
func (c *realtimeConn) serve(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		for topic, sub := range c.topics {
			sub.Close()
			delete(c.topics, topic)
		}
		c.mu.Unlock()

		c.wg.Wait()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(realtimeReadLimit)

	for {
		var msg models.RealtimeMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug().Err(err).Msg("realtime read failed")
			}
			return
		}

		switch msg.Event {
		case models.RealtimeEventJoin:
			c.join(ctx, msg)
		case models.RealtimeEventLeave:
			c.leave(msg)
		case models.RealtimeEventHeartbeat:
			c.reply(msg, models.ReplyPayload{Status: models.ReplyStatusOK})
		default:
			c.reply(msg, rejected("unknown event "+msg.Event))
		}
	}
}

func (c *realtimeConn) join(ctx context.Context, msg models.RealtimeMessage) {
	table, err := models.TableFromTopic(msg.Topic)
	if err != nil {
		c.logger.Warn().Err(err).Str("topic", msg.Topic).Msg("join rejected")
		c.reply(msg, rejected(app.MsgUnknownTable))
		return
	}

	var payload models.JoinPayload
	if len(msg.Payload) > 0 {
		if err = json.Unmarshal(msg.Payload, &payload); err != nil {
			c.reply(msg, rejected(app.MsgInvalidDataProvided))
			return
		}
	}

	c.mu.Lock()
	if _, joined := c.topics[msg.Topic]; joined {
		c.mu.Unlock()
		c.reply(msg, models.ReplyPayload{Status: models.ReplyStatusOK})
		return
	}
	c.mu.Unlock()

	sub, err := c.broker.Subscribe(ctx, table)
	if err != nil {
		c.logger.Err(err).Str("table", table.String()).Msg("broker subscription failed")
		c.reply(msg, rejected(app.MsgInternalServerError))
		return
	}

	c.mu.Lock()
	c.topics[msg.Topic] = sub
	c.mu.Unlock()

	c.wg.Add(1)
	go c.forward(msg.Topic, payload.Events, sub)

	c.reply(msg, models.ReplyPayload{Status: models.ReplyStatusOK})
}

func (c *realtimeConn) leave(msg models.RealtimeMessage) {
	c.mu.Lock()
	sub, ok := c.topics[msg.Topic]
	delete(c.topics, msg.Topic)
	c.mu.Unlock()

	if ok {
		sub.Close()
	}
	c.reply(msg, models.ReplyPayload{Status: models.ReplyStatusOK})
}

// forward relays broker events of the wanted kinds until sub is closed.
func (c *realtimeConn) forward(topic string, kinds []models.EventKind, sub broker.Subscription) {
	defer c.wg.Done()

	for event := range sub.Events() {
		if !models.ContainsEventKind(kinds, event.Type) {
			continue
		}
		if err := c.send(topic, models.RealtimeEventChanges, "", event); err != nil {
			c.logger.Debug().Err(err).Str("topic", topic).Msg("dropping change, client unreachable")
			return
		}
	}
}

func (c *realtimeConn) reply(msg models.RealtimeMessage, payload models.ReplyPayload) {
	if err := c.send(msg.Topic, models.RealtimeEventReply, msg.Ref, payload); err != nil {
		c.logger.Debug().Err(err).Str("topic", msg.Topic).Msg("reply failed")
	}
}

func (c *realtimeConn) send(topic, event, ref string, payload any) error {
	msg, err := models.NewRealtimeMessage(topic, event, ref, payload)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err = c.conn.SetWriteDeadline(time.Now().Add(realtimeWriteTimeout)); err != nil {
		return err
	}
	if err = c.conn.WriteJSON(msg); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return err
	}
	return nil
}

func rejected(reason string) models.ReplyPayload {
	return models.ReplyPayload{
		Status:   models.ReplyStatusError,
		Response: map[string]any{"reason": reason},
	}
}
