// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/bizdesk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService manages the signed-in session of the terminal client.
// The session token is kept in the local store so that the next start can
// resume without asking for credentials.
type ClientAuthService interface {
	// SignUp creates an account and signs in. All three fields are required.
	SignUp(ctx context.Context, username, email, password string) (models.Identity, error)

	SignIn(ctx context.Context, email, password string) (models.Identity, error)

	// SignOut ends the session on the backend and always forgets it locally.
	SignOut(ctx context.Context) error

	// CurrentSession asks the backend who is signed in. It returns nil when
	// nobody is.
	CurrentSession(ctx context.Context) (*models.Identity, error)

	// RestoreSession loads the stored session and checks it with the
	// backend. It returns nil when there is nothing to restore or the
	// stored token is no longer valid.
	RestoreSession(ctx context.Context) (*models.Identity, error)

	// UpdateProfile applies the non-empty arguments.
	UpdateProfile(ctx context.Context, username, email, password string) (models.Identity, error)

	// DeleteAccount removes the account and signs out.
	DeleteAccount(ctx context.Context) error
}

// ClientDirectoryService writes client and supplier rows. Reads go through
// list synchronizers, which also pick up the effect of these writes.
type ClientDirectoryService interface {
	CreateClient(ctx context.Context, in models.ClientInput) error
	// UpdateClient keeps the stored value of every blank field of in.
	UpdateClient(ctx context.Context, id int64, in models.ClientInput) error
	CreateSupplier(ctx context.Context, in models.SupplierInput) error
	UpdateSupplier(ctx context.Context, id int64, in models.SupplierInput) error
}
