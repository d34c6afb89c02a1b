// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/bizdesk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts in the "users" table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// UpdateUser overwrites username, email and password hash of an
	// existing account.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// RowRepository serves the directory tables as flat records. Every method
// expects a table that passed [models.Table.Valid].
type RowRepository interface {
	List(ctx context.Context, table models.Table) ([]models.Record, error)
	Count(ctx context.Context, table models.Table) (int64, error)
	Insert(ctx context.Context, table models.Table, record models.Record) (models.Record, error)
	// Update applies a partial record and returns the old and the new row.
	Update(ctx context.Context, table models.Table, id int64, partial models.Record) (old, updated models.Record, err error)
	// Delete removes a row and returns it as it was.
	Delete(ctx context.Context, table models.Table, id int64) (models.Record, error)
}

// ErrorClassificator decides whether a failed database call is worth
// repeating.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
