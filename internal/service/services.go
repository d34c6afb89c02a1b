// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/bizdesk/internal/broker"
	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/metrics"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/models"
)

// Services groups the server business logic consumed by the HTTP handler.
type Services struct {
	AuthService    AuthService
	RowService     RowService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, b broker.Broker, m *metrics.Metrics, cfg config.App, build models.AppBuildInfo, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg, logger),
		RowService:     NewRowService(storages.RowRepository, b, m, logger),
		AppInfoService: NewAppInfoService(cfg, build, logger),
	}
}
