// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the bizdesk HTTP server.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown bounded by [config.Server.ShutdownTimeout]. Realtime connections
// are hijacked from net/http, so they are closed by the handler layer once
// the server context is gone rather than drained by Shutdown.
package server
