// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bizdesk/models"
)

var clientColumns = []string{"id", "name", "email", "phone", "created_at"}

func newTestRowRepo(t *testing.T) (*rowRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &rowRepository{db: db, logger: db.logger}, mock
}

func TestRowRepository_List(t *testing.T) {
	repo, mock := newTestRowRepo(t)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, phone, created_at FROM clients ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(clientColumns).
			AddRow(int64(1), "Ana", "ana@example.com", nil, created).
			AddRow(int64(2), "Luis", nil, "555-0101", created))

	rows, err := repo.List(context.Background(), models.TableClients)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, models.Record{
		"id":         int64(1),
		"name":       "Ana",
		"email":      "ana@example.com",
		"phone":      nil,
		"created_at": created,
	}, rows[0])
	assert.Equal(t, "Luis", rows[1].Str("name"))
	assert.Nil(t, rows[1]["email"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowRepository_List_EmptyIsNotNil(t *testing.T) {
	repo, mock := newTestRowRepo(t)

	mock.ExpectQuery("FROM suppliers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "person_name", "email", "phone", "type", "created_at"}))

	rows, err := repo.List(context.Background(), models.TableSuppliers)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRowRepository_List_QueryError(t *testing.T) {
	repo, mock := newTestRowRepo(t)

	mock.ExpectQuery("FROM clients").WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), models.TableClients)
	require.ErrorIs(t, err, ErrExecutingQuery)
}

func TestRowRepository_Count(t *testing.T) {
	repo, mock := newTestRowRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM suppliers")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	n, err := repo.Count(context.Background(), models.TableSuppliers)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestRowRepository_Insert(t *testing.T) {
	repo, mock := newTestRowRepo(t)
	created := time.Now().UTC()

	// SetMap orders columns alphabetically.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients (email,name,phone) VALUES ($1,$2,$3) RETURNING id, name, email, phone, created_at")).
		WithArgs("ana@example.com", "Ana", "").
		WillReturnRows(sqlmock.NewRows(clientColumns).
			AddRow(int64(7), "Ana", "ana@example.com", "", created))

	inserted, err := repo.Insert(context.Background(), models.TableClients, models.Record{
		"name":  " Ana ",
		"email": "ana@example.com",
		"phone": "",
		"id":    int64(99),
	})
	require.NoError(t, err)

	id, err := inserted.ID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowRepository_Insert_RejectsBadRecords(t *testing.T) {
	tests := []struct {
		name    string
		record  models.Record
		wantErr error
	}{
		{name: "unknown column", record: models.Record{"name": "Ana", "vip": true}, wantErr: ErrUnknownColumn},
		{name: "only store-assigned fields", record: models.Record{"id": 1, "created_at": "x"}, wantErr: ErrEmptyRecord},
		{name: "empty", record: models.Record{}, wantErr: ErrEmptyRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRowRepo(t)

			_, err := repo.Insert(context.Background(), models.TableClients, tt.record)
			require.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRowRepository_Insert_ConstraintViolation(t *testing.T) {
	repo, mock := newTestRowRepo(t)

	mock.ExpectQuery("INSERT INTO clients").WillReturnError(pgError(pgerrcode.CheckViolation))

	_, err := repo.Insert(context.Background(), models.TableClients, models.Record{"name": "  "})
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRowRepository_Update(t *testing.T) {
	repo, mock := newTestRowRepo(t)
	created := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, phone, created_at FROM clients WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(int64(1), "Ana", "ana@example.com", nil, created))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE clients SET name = $1 WHERE id = $2 RETURNING id, name, email, phone, created_at")).
		WithArgs("Ana María", int64(1)).
		WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(int64(1), "Ana María", "ana@example.com", nil, created))
	mock.ExpectCommit()

	old, updated, err := repo.Update(context.Background(), models.TableClients, 1, models.Record{"name": "Ana María"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", old.Str("name"))
	assert.Equal(t, "Ana María", updated.Str("name"))
	assert.Equal(t, "ana@example.com", updated.Str("email"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowRepository_Update_Missing(t *testing.T) {
	repo, mock := newTestRowRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows(clientColumns))
	mock.ExpectRollback()

	_, _, err := repo.Update(context.Background(), models.TableClients, 42, models.Record{"name": "X"})
	require.ErrorIs(t, err, ErrRowNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newTestRowRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM clients WHERE id = $1 RETURNING id, name, email, phone, created_at")).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(int64(5), "Luis", nil, nil, time.Now()))

		deleted, err := repo.Delete(context.Background(), models.TableClients, 5)
		require.NoError(t, err)
		assert.Equal(t, "Luis", deleted.Str("name"))
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestRowRepo(t)

		mock.ExpectQuery("DELETE FROM clients").WillReturnRows(sqlmock.NewRows(clientColumns))

		_, err := repo.Delete(context.Background(), models.TableClients, 5)
		require.ErrorIs(t, err, ErrRowNotFound)
	})
}

func TestWritableValues_StoresText(t *testing.T) {
	values, err := writableValues(models.TableSuppliers, models.Record{
		"phone":      float64(5550101),
		"type":       nil,
		"created_at": "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"phone": "5550101", "type": nil}, values)
}

func TestClassifyPgError(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.DeadlockDetected)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.CannotConnectNow)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UniqueViolation)))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, NonRetryable, c.Classify(nil))
}
