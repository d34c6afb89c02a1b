// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's view of the bizdesk backend.
//
// The primary abstraction is [BackendGateway], which decouples the list
// synchronizers and client services from the underlying protocol. The
// package ships an HTTP/REST + WebSocket implementation ([NewHTTPGateway]).
//
// HTTP status codes are mapped to the sentinel errors in errors.go by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/bizdesk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_mock.go -package=mock

// SubscriptionHandle is one open change channel bound to one table. It is
// owned by whoever called Subscribe and must be released exactly once via
// [BackendGateway.Unsubscribe]; releasing it again is a no-op.
type SubscriptionHandle interface {
	// Table returns the table the subscription listens on.
	Table() models.Table

	// Kinds returns the change kinds delivered to the handler.
	Kinds() []models.EventKind
}

// RowGateway is the row and change-notification part of the backend.
type RowGateway interface {
	// FetchAll returns every row of table ordered by id.
	FetchAll(ctx context.Context, table models.Table) ([]models.Record, error)

	// Count returns the number of rows in table.
	Count(ctx context.Context, table models.Table) (int64, error)

	// Insert creates a row. The caller learns about the new row only through
	// a change subscription or a later fetch.
	Insert(ctx context.Context, table models.Table, record models.Record) error

	// Update applies a partial record to the row with the given id.
	Update(ctx context.Context, table models.Table, id int64, partial models.Record) error

	// Delete removes the row with the given id.
	Delete(ctx context.Context, table models.Table, id int64) error

	// Subscribe opens a change channel on table. handler is invoked for every
	// change whose kind is in kinds (an empty kinds list means all kinds),
	// sequentially, from a goroutine owned by the subscription.
	//
	// The subscription is also released when ctx is cancelled.
	Subscribe(ctx context.Context, table models.Table, kinds []models.EventKind, handler func(models.ChangeEvent)) (SubscriptionHandle, error)

	// Unsubscribe releases handle. It is idempotent and never blocks on the
	// network for longer than a write timeout.
	Unsubscribe(handle SubscriptionHandle)
}

// SessionGateway is the authentication part of the backend.
type SessionGateway interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently held, or "".
	Token() string

	// SignUp registers a new account and stores the issued token.
	SignUp(ctx context.Context, req models.SignUpRequest) (models.Identity, error)

	// SignIn authenticates with email and password and stores the issued token.
	SignIn(ctx context.Context, req models.SignInRequest) (models.Identity, error)

	// SignOut invalidates the session on the server and forgets the token.
	SignOut(ctx context.Context) error

	// CurrentSession returns the signed-in identity, or nil when there is no
	// valid session.
	CurrentSession(ctx context.Context) (*models.Identity, error)

	// UpdateProfile changes username, email or password. Empty fields keep
	// their stored value.
	UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (models.Identity, error)

	// DeleteAccount removes the signed-in account and forgets the token.
	DeleteAccount(ctx context.Context) error
}

// BackendGateway is everything the client needs from the backend.
type BackendGateway interface {
	RowGateway
	SessionGateway
}
