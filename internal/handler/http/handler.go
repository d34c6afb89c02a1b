// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/bizdesk/internal/broker"
	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/metrics"
	"github.com/MKhiriev/bizdesk/internal/service"
)

type Handler struct {
	services *service.Services
	broker   broker.Broker
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader

	// requestTimeout bounds auth and REST handlers; zero disables it.
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. m may be nil, in which case requests
// are not measured and /metrics answers 404.
func NewHandler(services *service.Services, b broker.Broker, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		broker:   b,
		metrics:  m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// clients are terminal apps, not browsers
			CheckOrigin: func(*http.Request) bool { return true },
		},
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
