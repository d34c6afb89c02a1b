// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/models"
)

var testUser = models.User{UserID: 7, Username: "ana", Email: "ana@example.com", PasswordHash: "$2a$secret"}

func decodeIdentity(t *testing.T, body []byte) models.Identity {
	t.Helper()
	var identity models.Identity
	require.NoError(t, json.Unmarshal(body, &identity))
	return identity
}

// ─────────────────────────────────────────────
// POST /auth/v1/signup
// ─────────────────────────────────────────────

func TestSignUp_Success(t *testing.T) {
	h, d := newTestHandler(t)

	d.auth.EXPECT().RegisterUser(gomock.Any(), models.User{Username: "ana", Email: "ana@example.com", Password: "pw"}).
		Return(testUser, nil)
	d.auth.EXPECT().CreateToken(gomock.Any(), testUser).Return(models.Token{SignedString: "jwt-1"}, nil)

	rr := serve(h, newRequest(http.MethodPost, "/auth/v1/signup",
		models.SignUpRequest{Username: "ana", Email: "ana@example.com", Password: "pw"}))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Bearer jwt-1", rr.Header().Get("Authorization"))
	assert.Equal(t, testUser.Identity(), decodeIdentity(t, rr.Body.Bytes()))
	assert.NotContains(t, rr.Body.String(), "secret", "password hash must never be serialized")
}

func TestSignUp_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		registerErr error
		wantStatus  int
		wantMsg     string
	}{
		{
			name:       "malformed JSON",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name:        "missing fields",
			body:        models.SignUpRequest{Email: "a@b.c"},
			registerErr: service.ErrInvalidDataProvided,
			wantStatus:  http.StatusBadRequest,
			wantMsg:     app.MsgInvalidDataProvided,
		},
		{
			name:        "email taken",
			body:        models.SignUpRequest{Username: "a", Email: "a@b.c", Password: "x"},
			registerErr: fmt.Errorf("user creation ended with error: %w", store.ErrEmailAlreadyExists),
			wantStatus:  http.StatusConflict,
			wantMsg:     app.MsgEmailAlreadyExists,
		},
		{
			name:        "database down",
			body:        models.SignUpRequest{Username: "a", Email: "a@b.c", Password: "x"},
			registerErr: errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMsg:     app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newTestHandler(t)
			if tt.registerErr != nil {
				d.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.registerErr)
			}

			rr := serve(h, newRequest(http.MethodPost, "/auth/v1/signup", tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rr))
			assert.Empty(t, rr.Header().Get("Authorization"))
		})
	}
}

func TestSignUp_TokenFailureIsBadGateway(t *testing.T) {
	h, d := newTestHandler(t)

	d.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(testUser, nil)
	d.auth.EXPECT().CreateToken(gomock.Any(), testUser).Return(models.Token{}, service.ErrTokenCreationFailed)

	rr := serve(h, newRequest(http.MethodPost, "/auth/v1/signup",
		models.SignUpRequest{Username: "ana", Email: "ana@example.com", Password: "pw"}))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, app.MsgRegistrationFailed, errorMessage(t, rr))
}

// ─────────────────────────────────────────────
// POST /auth/v1/token
// ─────────────────────────────────────────────

func TestSignIn_Success(t *testing.T) {
	h, d := newTestHandler(t)

	d.auth.EXPECT().Login(gomock.Any(), "ana@example.com", "pw").Return(testUser, nil)
	d.auth.EXPECT().CreateToken(gomock.Any(), testUser).Return(models.Token{SignedString: "jwt-2"}, nil)

	rr := serve(h, newRequest(http.MethodPost, "/auth/v1/token",
		models.SignInRequest{Email: "ana@example.com", Password: "pw"}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer jwt-2", rr.Header().Get("Authorization"))
	assert.Equal(t, testUser.Identity(), decodeIdentity(t, rr.Body.Bytes()))
}

func TestSignIn_WrongPassword(t *testing.T) {
	h, d := newTestHandler(t)

	d.auth.EXPECT().Login(gomock.Any(), "ana@example.com", "bad").Return(models.User{}, service.ErrWrongPassword)

	rr := serve(h, newRequest(http.MethodPost, "/auth/v1/token",
		models.SignInRequest{Email: "ana@example.com", Password: "bad"}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, app.MsgInvalidEmailPassword, errorMessage(t, rr))
}

func TestSignIn_TokenFailureIsBadGateway(t *testing.T) {
	h, d := newTestHandler(t)

	d.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(testUser, nil)
	d.auth.EXPECT().CreateToken(gomock.Any(), testUser).Return(models.Token{}, service.ErrTokenCreationFailed)

	rr := serve(h, newRequest(http.MethodPost, "/auth/v1/token", models.SignInRequest{Email: "a@b.c", Password: "x"}))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, app.MsgLoginFailed, errorMessage(t, rr))
}

// ─────────────────────────────────────────────
// Authenticated account routes
// ─────────────────────────────────────────────

func TestSignOut(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)

	rr := serve(h, authedRequest(http.MethodPost, "/auth/v1/logout", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestGetUser(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.auth.EXPECT().GetUser(gomock.Any(), int64(7)).Return(testUser, nil)

	rr := serve(h, authedRequest(http.MethodGet, "/auth/v1/user", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testUser.Identity(), decodeIdentity(t, rr.Body.Bytes()))
}

func TestGetUser_AccountGone(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.auth.EXPECT().GetUser(gomock.Any(), int64(7)).
		Return(models.User{}, fmt.Errorf("user search by id failed: %w", store.ErrNoUserWasFound))

	rr := serve(h, authedRequest(http.MethodGet, "/auth/v1/user", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgUserNotFound, errorMessage(t, rr))
}

func TestUpdateUser(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	renamed := testUser
	renamed.Username = "Ana María"

	d.auth.EXPECT().UpdateProfile(gomock.Any(), int64(7), models.ProfileUpdateRequest{Username: "Ana María"}).
		Return(renamed, nil)

	rr := serve(h, authedRequest(http.MethodPut, "/auth/v1/user", models.ProfileUpdateRequest{Username: "Ana María"}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Ana María", decodeIdentity(t, rr.Body.Bytes()).Username)
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.auth.EXPECT().UpdateProfile(gomock.Any(), int64(7), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	rr := serve(h, authedRequest(http.MethodPut, "/auth/v1/user", models.ProfileUpdateRequest{Email: "taken@b.c"}))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDeleteUser(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.auth.EXPECT().DeleteUser(gomock.Any(), int64(7)).Return(nil)

	rr := serve(h, authedRequest(http.MethodDelete, "/auth/v1/user", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
