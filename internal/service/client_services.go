// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/store"
)

type ClientServices struct {
	AuthService      ClientAuthService
	DirectoryService ClientDirectoryService
}

func NewClientServices(localStore *store.ClientStorages, gateway adapter.BackendGateway, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		AuthService:      NewClientAuthService(localStore.SessionRepository, gateway, logger),
		DirectoryService: NewClientDirectoryService(gateway, logger),
	}
}
