// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/bizdesk/internal/broker"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/metrics"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/models"
)

type rowService struct {
	rows    store.RowRepository
	broker  broker.Broker
	metrics *metrics.Metrics
	now     func() time.Time
	logger  *logger.Logger
}

// NewRowService builds a RowService. Every successful insert, update and
// delete is published on b after the database commit.
func NewRowService(rows store.RowRepository, b broker.Broker, m *metrics.Metrics, logger *logger.Logger) RowService {
	return &rowService{
		rows:    rows,
		broker:  b,
		metrics: m,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *rowService) List(ctx context.Context, table models.Table) ([]models.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	return s.rows.List(ctx, table)
}

func (s *rowService) Count(ctx context.Context, table models.Table) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	return s.rows.Count(ctx, table)
}

func (s *rowService) Insert(ctx context.Context, table models.Table, record models.Record) (models.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	inserted, err := s.rows.Insert(ctx, table, record)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, table, models.EventInserted, inserted, nil)
	return inserted, nil
}

func (s *rowService) Update(ctx context.Context, table models.Table, id int64, partial models.Record) (models.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrInvalidRowID
	}

	old, updated, err := s.rows.Update(ctx, table, id, partial)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, table, models.EventUpdated, updated, old)
	return updated, nil
}

func (s *rowService) Delete(ctx context.Context, table models.Table, id int64) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if id <= 0 {
		return ErrInvalidRowID
	}

	deleted, err := s.rows.Delete(ctx, table, id)
	if err != nil {
		return err
	}

	s.publish(ctx, table, models.EventDeleted, nil, deleted)
	return nil
}

// publish announces a committed change. The change already happened, so a
// broker failure is logged and not returned.
func (s *rowService) publish(ctx context.Context, table models.Table, kind models.EventKind, record, old models.Record) {
	event := models.ChangeEvent{
		Schema:          models.RealtimeSchema,
		Table:           table,
		Type:            kind,
		Record:          record,
		OldRecord:       old,
		CommitTimestamp: s.now().UTC(),
	}

	if err := s.broker.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("table", table.String()).
			Str("type", string(kind)).
			Msg("error publishing change event")
		return
	}

	s.metrics.ObservePublished(table.String(), string(kind))
}

func checkTable(table models.Table) error {
	if !table.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownTable, table)
	}
	return nil
}
