// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/models"
)

const readTimeout = 2 * time.Second

func startServer(t *testing.T, h *Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)
	return srv
}

func dialRealtime(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/realtime/v1/websocket?token=" + token

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendFrame(t *testing.T, conn *websocket.Conn, topic, event, ref string, payload any) {
	t.Helper()
	msg, err := models.NewRealtimeMessage(topic, event, ref, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func readFrame(t *testing.T, conn *websocket.Conn) models.RealtimeMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))

	var msg models.RealtimeMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readReply(t *testing.T, conn *websocket.Conn, ref string) models.ReplyPayload {
	t.Helper()
	msg := readFrame(t, conn)
	require.Equal(t, models.RealtimeEventReply, msg.Event)
	require.Equal(t, ref, msg.Ref)

	var reply models.ReplyPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &reply))
	return reply
}

// ─────────────────────────────────────────────
// Handshake
// ─────────────────────────────────────────────

func TestRealtime_RejectsInvalidToken(t *testing.T) {
	h, d := newTestHandler(t)
	d.auth.EXPECT().ParseToken(gomock.Any(), "forged").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
	srv := startServer(t, h)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/realtime/v1/websocket?token=forged"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ─────────────────────────────────────────────
// Channel protocol
// ─────────────────────────────────────────────

func TestRealtime_JoinUnknownTableIsRejected(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	conn := dialRealtime(t, startServer(t, h), testToken)

	sendFrame(t, conn, "realtime:public:invoices", models.RealtimeEventJoin, "1", models.JoinPayload{})
	reply := readReply(t, conn, "1")

	assert.Equal(t, models.ReplyStatusError, reply.Status)
	assert.Equal(t, app.MsgUnknownTable, reply.Response["reason"])
}

func TestRealtime_Heartbeat(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	conn := dialRealtime(t, startServer(t, h), testToken)

	sendFrame(t, conn, models.RealtimeHeartbeatTopic, models.RealtimeEventHeartbeat, "9", nil)

	assert.Equal(t, models.ReplyStatusOK, readReply(t, conn, "9").Status)
}

func TestRealtime_ForwardsWantedKindsOnly(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	srv := startServer(t, h)
	conn := dialRealtime(t, srv, testToken)
	topic := models.RealtimeTopic(models.TableClients)

	sendFrame(t, conn, topic, models.RealtimeEventJoin, "1", models.JoinPayload{Events: []models.EventKind{models.EventInserted}})
	require.Equal(t, models.ReplyStatusOK, readReply(t, conn, "1").Status)

	ctx := context.Background()
	require.NoError(t, d.broker.Publish(ctx, models.ChangeEvent{
		Schema: models.RealtimeSchema, Table: models.TableClients, Type: models.EventUpdated,
		Record: models.Record{"id": 1, "name": "skipped"},
	}))
	require.NoError(t, d.broker.Publish(ctx, models.ChangeEvent{
		Schema: models.RealtimeSchema, Table: models.TableClients, Type: models.EventInserted,
		Record: models.Record{"id": 2, "name": "Beto"},
	}))

	msg := readFrame(t, conn)
	require.Equal(t, models.RealtimeEventChanges, msg.Event)
	assert.Equal(t, topic, msg.Topic)

	var event models.ChangeEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, models.EventInserted, event.Type)
	assert.Equal(t, "Beto", event.Record.Str("name"))
}

func TestRealtime_LeaveReleasesBrokerSubscription(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	conn := dialRealtime(t, startServer(t, h), testToken)
	topic := models.RealtimeTopic(models.TableSuppliers)

	sendFrame(t, conn, topic, models.RealtimeEventJoin, "1", nil)
	require.Equal(t, models.ReplyStatusOK, readReply(t, conn, "1").Status)
	assert.Equal(t, 1, d.broker.SubscriberCount(models.TableSuppliers))

	sendFrame(t, conn, topic, models.RealtimeEventLeave, "2", nil)
	require.Equal(t, models.ReplyStatusOK, readReply(t, conn, "2").Status)
	assert.Equal(t, 0, d.broker.SubscriberCount(models.TableSuppliers))
}

func TestRealtime_DisconnectReleasesSubscriptions(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	conn := dialRealtime(t, startServer(t, h), testToken)

	sendFrame(t, conn, models.RealtimeTopic(models.TableClients), models.RealtimeEventJoin, "1", nil)
	require.Equal(t, models.ReplyStatusOK, readReply(t, conn, "1").Status)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		return d.broker.SubscriberCount(models.TableClients) == 0
	}, readTimeout, 10*time.Millisecond)
}

// ─────────────────────────────────────────────
// Gateway round trip
// ─────────────────────────────────────────────

func TestRealtime_GatewaySubscription(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	srv := startServer(t, h)

	gateway, err := adapter.NewHTTPGateway(config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: readTimeout}, logger.Nop())
	require.NoError(t, err)
	gateway.SetToken(testToken)

	received := make(chan models.ChangeEvent, 1)
	handle, err := gateway.Subscribe(context.Background(), models.TableClients, nil, func(ev models.ChangeEvent) {
		received <- ev
	})
	require.NoError(t, err)
	defer gateway.Unsubscribe(handle)

	require.NoError(t, d.broker.Publish(context.Background(), models.ChangeEvent{
		Schema:    models.RealtimeSchema,
		Table:     models.TableClients,
		Type:      models.EventDeleted,
		OldRecord: models.Record{"id": 4, "name": "Ana"},
	}))

	select {
	case ev := <-received:
		assert.Equal(t, models.EventDeleted, ev.Type)
		assert.Equal(t, "Ana", ev.OldRecord.Str("name"))
	case <-time.After(readTimeout):
		t.Fatal("change event was not delivered")
	}
}
