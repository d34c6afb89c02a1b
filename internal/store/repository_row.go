// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

// rowRepository serves the directory tables (clients, suppliers) as flat
// records. The column set of each table comes from [models.ColumnsOf], so
// the table name is never taken from user input unchecked.
type rowRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRowRepository constructs a [RowRepository] backed by db.
func NewRowRepository(db *DB, logger *logger.Logger) RowRepository {
	logger.Debug().Msg("creating row repository")
	return &rowRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every row of table ordered by id.
func (r *rowRepository) List(ctx context.Context, table models.Table) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRowsQuery(table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var records []models.Record
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		records = records[:0]

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			record, err := scanRecord(rows, table)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			records = append(records, record)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*rowRepository.List").Str("table", table.String()).Msg("error listing rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// Count returns the number of rows in table.
func (r *rowRepository) Count(ctx context.Context, table models.Table) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountRowsQuery(table)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "*rowRepository.Count").Str("table", table.String()).Msg("error counting rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// Insert stores record and returns the row as the database wrote it.
func (r *rowRepository) Insert(ctx context.Context, table models.Table, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	values, err := writableValues(table, record)
	if err != nil {
		return nil, err
	}

	query, args, err := buildInsertRowQuery(table, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	inserted, err := scanRecord(r.db.QueryRowContext(ctx, query, args...), table)
	if err != nil {
		log.Err(err).Str("func", "*rowRepository.Insert").Str("table", table.String()).Msg("error inserting row")
		return nil, mutationError(err)
	}

	return inserted, nil
}

// Update locks the row, applies partial and returns both versions. Fields
// absent from partial keep their stored value.
func (r *rowRepository) Update(ctx context.Context, table models.Table, id int64, partial models.Record) (models.Record, models.Record, error) {
	log := logger.FromContext(ctx)

	values, err := writableValues(table, partial)
	if err != nil {
		return nil, nil, err
	}

	lockQuery, lockArgs, err := buildLockRowQuery(table, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	updateQuery, updateArgs, err := buildUpdateRowQuery(table, id, values)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*rowRepository.Update").Msg("error beginning transaction")
		return nil, nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback()
	}()

	old, err := scanRecord(tx.QueryRowContext(ctx, lockQuery, lockArgs...), table)
	if err != nil {
		log.Err(err).Str("func", "*rowRepository.Update").Int64("id", id).Msg("error locking row")
		return nil, nil, mutationError(err)
	}

	updated, err := scanRecord(tx.QueryRowContext(ctx, updateQuery, updateArgs...), table)
	if err != nil {
		log.Err(err).Str("func", "*rowRepository.Update").Int64("id", id).Msg("error updating row")
		return nil, nil, mutationError(err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*rowRepository.Update").Msg("error committing transaction")
		return nil, nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return old, updated, nil
}

// Delete removes the row with id and returns it.
func (r *rowRepository) Delete(ctx context.Context, table models.Table, id int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRowQuery(table, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	deleted, err := scanRecord(r.db.QueryRowContext(ctx, query, args...), table)
	if err != nil {
		log.Err(err).Str("func", "*rowRepository.Delete").Int64("id", id).Msg("error deleting row")
		return nil, mutationError(err)
	}

	return deleted, nil
}

func mutationError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRowNotFound
	}

	switch postgresError(err) {
	case pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row selected with [rowColumns]. NULL text columns
// become nil fields.
func scanRecord(row rowScanner, table models.Table) (models.Record, error) {
	columns := models.ColumnsOf(table)

	var (
		id        int64
		createdAt time.Time
		texts     = make([]sql.NullString, len(columns))
	)

	dest := make([]any, 0, len(columns)+2)
	dest = append(dest, &id)
	for i := range texts {
		dest = append(dest, &texts[i])
	}
	dest = append(dest, &createdAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	record := make(models.Record, len(columns)+2)
	record[models.RecordIDField] = id
	for i, col := range columns {
		if texts[i].Valid {
			record[col] = texts[i].String
		} else {
			record[col] = nil
		}
	}
	record["created_at"] = createdAt

	return record, nil
}
