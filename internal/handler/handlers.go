// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/bizdesk/internal/broker"
	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/handler/http"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/metrics"
	"github.com/MKhiriev/bizdesk/internal/service"
)

// Handlers groups the transports served by the bizdesk server.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, b broker.Broker, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoTransport
	}

	return &Handlers{HTTP: http.NewHandler(services, b, m, cfg, logger)}, nil
}
