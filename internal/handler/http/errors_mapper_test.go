// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/models"
)

func TestResponseFromError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{fmt.Errorf("login: %w", service.ErrWrongPassword), http.StatusUnauthorized, app.MsgInvalidEmailPassword},
		{fmt.Errorf("%w: %q", models.ErrUnknownTable, "x"), http.StatusBadRequest, app.MsgUnknownTable},
		{fmt.Errorf("wrapped: %w", store.ErrEmailAlreadyExists), http.StatusConflict, app.MsgEmailAlreadyExists},
		{store.ErrRowNotFound, http.StatusNotFound, app.MsgRowNotFound},
		{store.ErrNoUserWasFound, http.StatusNotFound, app.MsgUserNotFound},
		{fmt.Errorf("%w: %w", store.ErrExecutingQuery, errors.New("boom")), http.StatusInternalServerError, app.MsgInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := responseFromError(tt.err)
			assert.Equal(t, tt.wantStatus, got.status)
			assert.Equal(t, tt.wantMsg, got.message)
		})
	}
}

func TestErrorStatusMap_NoDuplicateMatches(t *testing.T) {
	for target := range errorStatusMap {
		matches := 0
		for other := range errorStatusMap {
			if errors.Is(target, other) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "%v matches more than one entry", target)
	}
}
