// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the bizdesk server.
//
// It wires the chi routes of the auth, REST and realtime APIs, the request
// handlers and the middleware chain. Request tracing, access logging,
// request metrics and bearer authentication happen here before requests are
// delegated to the service layer.
package http
