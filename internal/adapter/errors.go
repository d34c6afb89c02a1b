// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	ErrInvalidAddress       = errors.New("invalid backend address")
	ErrSubscriptionRejected = errors.New("subscription rejected")
	ErrSubscriptionClosed   = errors.New("subscription closed")
	ErrMissingToken         = errors.New("missing bearer token in response")
)
