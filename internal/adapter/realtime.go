// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
	"github.com/gorilla/websocket"
)

const (
	joinTimeout  = 10 * time.Second
	writeTimeout = 5 * time.Second
)

// realtimeSubscription is the [SubscriptionHandle] returned by
// [HTTPGateway.Subscribe]. It owns one websocket connection.
type realtimeSubscription struct {
	table   models.Table
	kinds   []models.EventKind
	topic   string
	handler func(models.ChangeEvent)

	conn    *websocket.Conn
	writeMu sync.Mutex
	ref     atomic.Int64

	closed    chan struct{}
	closeOnce sync.Once
	stopWatch func() bool

	logger *logger.Logger
}

func (s *realtimeSubscription) Table() models.Table { return s.table }

func (s *realtimeSubscription) Kinds() []models.EventKind { return slices.Clone(s.kinds) }

// Subscribe implements [RowGateway]. It dials the realtime endpoint, joins
// the table topic and waits for the join reply before returning.
func (g *HTTPGateway) Subscribe(ctx context.Context, table models.Table, kinds []models.EventKind, handler func(models.ChangeEvent)) (SubscriptionHandle, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("subscribe: %w: %q", models.ErrUnknownTable, table)
	}
	if handler == nil {
		return nil, errors.New("subscribe: nil handler")
	}

	wsURL, err := g.realtimeURL()
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", table, err)
	}

	conn, resp, err := g.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			_ = resp.Body.Close()
			if mapped := mapStatus(resp.StatusCode, body); mapped != nil {
				return nil, fmt.Errorf("subscribe %s: %w", table, mapped)
			}
		}
		return nil, fmt.Errorf("subscribe %s: dial: %w", table, err)
	}

	sub := &realtimeSubscription{
		table:   table,
		kinds:   slices.Clone(kinds),
		topic:   models.RealtimeTopic(table),
		handler: handler,
		conn:    conn,
		closed:  make(chan struct{}),
		logger:  g.logger.WithComponent("realtime"),
	}
	sub.stopWatch = context.AfterFunc(ctx, sub.close)

	if err = sub.join(ctx); err != nil {
		sub.release()
		return nil, fmt.Errorf("subscribe %s: %w", table, err)
	}

	go sub.readLoop()
	if g.heartbeatInterval > 0 {
		go sub.heartbeatLoop(g.heartbeatInterval)
	}

	sub.logger.Debug().Str("table", table.String()).Msg("subscribed")
	return sub, nil
}

// Unsubscribe implements [RowGateway].
func (g *HTTPGateway) Unsubscribe(handle SubscriptionHandle) {
	sub, ok := handle.(*realtimeSubscription)
	if !ok || sub == nil {
		if handle != nil {
			g.logger.Warn().Msgf("unsubscribe: foreign handle %T ignored", handle)
		}
		return
	}

	sub.release()
}

func (s *realtimeSubscription) nextRef() string {
	return strconv.FormatInt(s.ref.Add(1), 10)
}

// join sends phx_join and reads frames until the matching reply arrives.
func (s *realtimeSubscription) join(ctx context.Context) error {
	ref := s.nextRef()
	if err := s.send(s.topic, models.RealtimeEventJoin, ref, models.JoinPayload{Events: s.kinds}); err != nil {
		return err
	}

	deadline := time.Now().Add(joinTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return err
	}
	defer s.conn.SetReadDeadline(time.Time{})

	for {
		var msg models.RealtimeMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("waiting for join reply: %w", err)
		}
		if msg.Event != models.RealtimeEventReply || msg.Ref != ref {
			continue
		}

		var reply models.ReplyPayload
		if err := json.Unmarshal(msg.Payload, &reply); err != nil {
			return fmt.Errorf("decode join reply: %w", err)
		}
		if reply.Status != models.ReplyStatusOK {
			return fmt.Errorf("%w: %v", ErrSubscriptionRejected, reply.Response["reason"])
		}
		return nil
	}
}

func (s *realtimeSubscription) readLoop() {
	for {
		var msg models.RealtimeMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			select {
			case <-s.closed:
			default:
				s.logger.Warn().Err(err).Str("table", s.table.String()).Msg("realtime connection lost")
				s.release()
			}
			return
		}

		switch msg.Event {
		case models.RealtimeEventChanges:
			if msg.Topic != s.topic {
				continue
			}
			s.dispatch(msg.Payload)
		case models.RealtimeEventError, models.RealtimeEventClose:
			if msg.Topic == s.topic {
				s.logger.Warn().Str("event", msg.Event).Str("table", s.table.String()).Msg("channel closed by server")
				s.release()
				return
			}
		}
	}
}

func (s *realtimeSubscription) dispatch(payload json.RawMessage) {
	var event models.ChangeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn().Err(err).Msg("malformed change event skipped")
		return
	}
	if !models.ContainsEventKind(s.kinds, event.Type) {
		return
	}

	select {
	case <-s.closed:
		return
	default:
	}
	s.handler(event)
}

func (s *realtimeSubscription) heartbeatLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.closed:
			return
		case <-ticker.C:
			if err := s.send(models.RealtimeHeartbeatTopic, models.RealtimeEventHeartbeat, s.nextRef(), nil); err != nil {
				s.logger.Debug().Err(err).Msg("heartbeat failed")
				return
			}
		}
	}
}

func (s *realtimeSubscription) send(topic, event, ref string, payload any) error {
	msg, err := models.NewRealtimeMessage(topic, event, ref, payload)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

// release closes the subscription and detaches it from the Subscribe
// context. Not for use by the context callback itself.
func (s *realtimeSubscription) release() {
	s.close()
	if s.stopWatch != nil {
		s.stopWatch()
	}
}

// close leaves the channel and tears the connection down once.
func (s *realtimeSubscription) close() {
	s.closeOnce.Do(func() {
		close(s.closed)

		_ = s.send(s.topic, models.RealtimeEventLeave, s.nextRef(), nil)

		s.writeMu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeTimeout))
		s.writeMu.Unlock()

		if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Debug().Err(err).Msg("closing realtime connection")
		}
		s.logger.Debug().Str("table", s.table.String()).Msg("unsubscribed")
	})
}
