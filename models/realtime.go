// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Realtime channel events. The framing follows Phoenix channels as used by
// Supabase Realtime.
const (
	RealtimeEventJoin      = "phx_join"
	RealtimeEventLeave     = "phx_leave"
	RealtimeEventReply     = "phx_reply"
	RealtimeEventError     = "phx_error"
	RealtimeEventClose     = "phx_close"
	RealtimeEventHeartbeat = "heartbeat"
	RealtimeEventChanges   = "postgres_changes"

	// RealtimeHeartbeatTopic is the topic heartbeats are sent on.
	RealtimeHeartbeatTopic = "phoenix"

	// RealtimeSchema is the schema part of every table topic.
	RealtimeSchema = "public"

	ReplyStatusOK    = "ok"
	ReplyStatusError = "error"
)

const realtimeTopicPrefix = "realtime:" + RealtimeSchema + ":"

// RealtimeMessage is one frame on the realtime websocket.
type RealtimeMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Ref     string          `json:"ref,omitempty"`
	JoinRef string          `json:"join_ref,omitempty"`
}

// JoinPayload is sent with phx_join. An empty Events list subscribes to all
// change kinds.
type JoinPayload struct {
	Events []EventKind `json:"events,omitempty"`
}

// ReplyPayload is sent with phx_reply.
type ReplyPayload struct {
	Status   string         `json:"status"`
	Response map[string]any `json:"response,omitempty"`
}

// RealtimeTopic returns the channel topic for table.
func RealtimeTopic(table Table) string {
	return realtimeTopicPrefix + string(table)
}

// TableFromTopic extracts the table from a channel topic.
func TableFromTopic(topic string) (Table, error) {
	if !strings.HasPrefix(topic, realtimeTopicPrefix) {
		return "", fmt.Errorf("%w: topic %q", ErrUnknownTable, topic)
	}
	return ParseTable(strings.TrimPrefix(topic, realtimeTopicPrefix))
}

// NewRealtimeMessage builds a frame with payload marshalled to JSON.
func NewRealtimeMessage(topic, event, ref string, payload any) (RealtimeMessage, error) {
	msg := RealtimeMessage{Topic: topic, Event: event, Ref: ref}
	if payload == nil {
		msg.Payload = json.RawMessage(`{}`)
		return msg, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return RealtimeMessage{}, fmt.Errorf("encode realtime payload: %w", err)
	}
	msg.Payload = raw
	return msg, nil
}
