// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/models"
)

// mapAdapterError translates a transport error of the gateway into a service
// error the UI knows how to present. Unrecognised errors pass through.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrMissingToken):
		return ErrNotSignedIn

	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgUnknownTable:
			return models.ErrUnknownTable
		case app.MsgInvalidDataProvided, app.MsgUnknownColumn, app.MsgEmptyRecord, app.MsgInvalidRecord, app.MsgInvalidRowID:
			return ErrInvalidDataProvided
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidEmailPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpired:
			return ErrTokenIsExpired
		default:
			return ErrNotSignedIn
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgUserNotFound:
			return ErrNotSignedIn
		default:
			return ErrRowNotFound
		}

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgEmailAlreadyExists {
			return ErrEmailAlreadyExists
		}

	case errors.Is(err, adapter.ErrBadGateway):
		switch msg {
		case app.MsgRegistrationFailed:
			return ErrRegisterOnServer
		case app.MsgLoginFailed:
			return ErrLoginOnServer
		}
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
