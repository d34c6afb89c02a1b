// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

type clientDirectoryService struct {
	gateway adapter.RowGateway
	logger  *logger.Logger
}

func NewClientDirectoryService(gateway adapter.RowGateway, logger *logger.Logger) ClientDirectoryService {
	return &clientDirectoryService{gateway: gateway, logger: logger}
}

func (s *clientDirectoryService) CreateClient(ctx context.Context, in models.ClientInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	return s.insert(ctx, models.TableClients, in.Record())
}

func (s *clientDirectoryService) UpdateClient(ctx context.Context, id int64, in models.ClientInput) error {
	return s.update(ctx, models.TableClients, id, in.Patch())
}

func (s *clientDirectoryService) CreateSupplier(ctx context.Context, in models.SupplierInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	return s.insert(ctx, models.TableSuppliers, in.Record())
}

func (s *clientDirectoryService) UpdateSupplier(ctx context.Context, id int64, in models.SupplierInput) error {
	return s.update(ctx, models.TableSuppliers, id, in.Patch())
}

func (s *clientDirectoryService) insert(ctx context.Context, table models.Table, record models.Record) error {
	if err := s.gateway.Insert(ctx, table, record); err != nil {
		s.logger.Err(err).Str("table", table.String()).Msg("insert failed")
		return mapAdapterError(err)
	}
	return nil
}

// update sends only the non-blank fields. A patch with no fields is a no-op.
func (s *clientDirectoryService) update(ctx context.Context, table models.Table, id int64, patch models.Record) error {
	if id <= 0 {
		return ErrInvalidRowID
	}
	if len(patch) == 0 {
		return nil
	}

	if err := s.gateway.Update(ctx, table, id, patch); err != nil {
		s.logger.Err(err).Str("table", table.String()).Int64("id", id).Msg("update failed")
		return mapAdapterError(err)
	}
	return nil
}
