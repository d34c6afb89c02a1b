// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrInvalidRowID = errors.New("invalid row id")
)

// Client-side errors.
var (
	// ErrNotSignedIn is returned by calls that need a session when there is
	// none, or when the backend no longer accepts the stored token.
	ErrNotSignedIn = errors.New("not signed in")

	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNameRequired       = errors.New("name is required")
	ErrNothingToUpdate    = errors.New("nothing to update")
	ErrRowNotFound        = errors.New("row not found")
	ErrRegisterOnServer   = errors.New("registration on server failed")
	ErrLoginOnServer      = errors.New("login on server failed")
)
