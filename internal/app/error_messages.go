// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings shared by the server handlers,
// which write them into JSON error bodies, and the client services, which
// map them back to sentinel errors.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or a required field is missing.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the email/password pair does
	// not match an account.
	MsgInvalidEmailPassword = "invalid email/password"

	MsgInternalServerError = "internal server error"

	// MsgMissingToken is returned when an authed route is called without a
	// bearer token.
	MsgMissingToken = "missing bearer token"

	MsgTokenIsExpired          = "token is expired"
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgUserNotFound is returned when a valid token names an account that
	// has since been deleted.
	MsgUserNotFound = "user not found"

	MsgEmailAlreadyExists = "email already exists"

	MsgRegistrationFailed = "registration failed"
	MsgLoginFailed        = "login failed"

	MsgUnknownTable  = "unknown table"
	MsgUnknownColumn = "unknown column"
	MsgInvalidRowID  = "invalid row id"
	MsgEmptyRecord   = "record has no writable fields"
	MsgInvalidRecord = "record violates table constraints"
	MsgRowNotFound   = "row not found"
)
