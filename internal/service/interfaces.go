// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/bizdesk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	GetUser(ctx context.Context, userID int64) (models.User, error)
	// UpdateProfile applies the non-empty fields of req.
	UpdateProfile(ctx context.Context, userID int64, req models.ProfileUpdateRequest) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// RowService exposes the directory tables and announces every committed
// change to realtime subscribers.
type RowService interface {
	List(ctx context.Context, table models.Table) ([]models.Record, error)
	Count(ctx context.Context, table models.Table) (int64, error)
	Insert(ctx context.Context, table models.Table, record models.Record) (models.Record, error)
	Update(ctx context.Context, table models.Table, id int64, partial models.Record) (models.Record, error)
	Delete(ctx context.Context, table models.Table, id int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
