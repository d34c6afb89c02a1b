// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/mock"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/internal/utils"
	"github.com/MKhiriev/bizdesk/models"
)

// newTestAuthSvc creates a clientAuthService on top of mocks.
func newTestAuthSvc(t *testing.T) (*clientAuthService, *mock.MockSessionGateway, *mock.MockLocalSessionRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockSessionGateway(ctrl)
	sessions := mock.NewMockLocalSessionRepository(ctrl)

	svc := NewClientAuthService(sessions, gateway, logger.Nop()).(*clientAuthService)
	return svc, gateway, sessions
}

func signedToken(t *testing.T, userID int64, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("bizdesk", userID, ttl, "key")
	require.NoError(t, err)
	return token.SignedString
}

var ana = models.Identity{UserID: 3, Username: "ana", Email: "ana@example.com"}

// ── SignUp / SignIn ──────────────────────────────────────────────────────────

func TestClientAuthService_SignUp_SavesSession(t *testing.T) {
	svc, gateway, sessions := newTestAuthSvc(t)
	ctx := context.Background()

	gateway.EXPECT().SignUp(ctx, models.SignUpRequest{Username: "ana", Email: "ana@example.com", Password: "pw"}).
		Return(ana, nil)
	gateway.EXPECT().Token().Return("tok")
	sessions.EXPECT().SaveSession(ctx, models.Session{Identity: ana, Token: "tok"}).Return(nil)

	got, err := svc.SignUp(ctx, " ana ", "ANA@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, ana, got)
}

func TestClientAuthService_SignUp_Validation(t *testing.T) {
	svc, _, _ := newTestAuthSvc(t)

	_, err := svc.SignUp(context.Background(), "", "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestClientAuthService_SignUp_EmailTaken(t *testing.T) {
	svc, gateway, _ := newTestAuthSvc(t)

	gateway.EXPECT().SignUp(gomock.Any(), gomock.Any()).
		Return(models.Identity{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgEmailAlreadyExists))

	_, err := svc.SignUp(context.Background(), "ana", "ana@example.com", "pw")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestClientAuthService_SignIn_WrongPassword(t *testing.T) {
	svc, gateway, _ := newTestAuthSvc(t)

	gateway.EXPECT().SignIn(gomock.Any(), models.SignInRequest{Email: "ana@example.com", Password: "bad"}).
		Return(models.Identity{}, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidEmailPassword))

	_, err := svc.SignIn(context.Background(), "ana@example.com", "bad")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestClientAuthService_SignIn_SaveFailureIsNotFatal(t *testing.T) {
	svc, gateway, sessions := newTestAuthSvc(t)

	gateway.EXPECT().SignIn(gomock.Any(), gomock.Any()).Return(ana, nil)
	gateway.EXPECT().Token().Return("tok")
	sessions.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	got, err := svc.SignIn(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, ana, got)
}

// ── SignOut ──────────────────────────────────────────────────────────────────

func TestClientAuthService_SignOut_AlwaysClearsLocalSession(t *testing.T) {
	tests := []struct {
		name    string
		gwErr   error
		wantErr bool
	}{
		{name: "success"},
		{name: "already signed out", gwErr: fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgMissingToken)},
		{name: "server down", gwErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, gateway, sessions := newTestAuthSvc(t)

			gateway.EXPECT().SignOut(gomock.Any()).Return(tt.gwErr)
			sessions.EXPECT().ClearSession(gomock.Any()).Return(nil)

			err := svc.SignOut(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ── RestoreSession ───────────────────────────────────────────────────────────

func TestClientAuthService_RestoreSession_NothingSaved(t *testing.T) {
	svc, _, sessions := newTestAuthSvc(t)

	sessions.EXPECT().LoadSession(gomock.Any()).Return(models.Session{}, store.ErrNoLocalSession)

	identity, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestClientAuthService_RestoreSession_ExpiredTokenIsDiscarded(t *testing.T) {
	svc, _, sessions := newTestAuthSvc(t)

	sessions.EXPECT().LoadSession(gomock.Any()).
		Return(models.Session{Identity: ana, Token: signedToken(t, 3, -time.Minute)}, nil)
	sessions.EXPECT().ClearSession(gomock.Any()).Return(nil)

	identity, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestClientAuthService_RestoreSession_GarbageTokenIsDiscarded(t *testing.T) {
	svc, _, sessions := newTestAuthSvc(t)

	sessions.EXPECT().LoadSession(gomock.Any()).Return(models.Session{Identity: ana, Token: "garbage"}, nil)
	sessions.EXPECT().ClearSession(gomock.Any()).Return(nil)

	identity, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestClientAuthService_RestoreSession_Valid(t *testing.T) {
	svc, gateway, sessions := newTestAuthSvc(t)
	token := signedToken(t, 3, time.Hour)
	fresh := ana
	fresh.Username = "Ana María"

	sessions.EXPECT().LoadSession(gomock.Any()).Return(models.Session{Identity: ana, Token: token}, nil)
	gateway.EXPECT().SetToken(token)
	gateway.EXPECT().CurrentSession(gomock.Any()).Return(&fresh, nil)
	gateway.EXPECT().Token().Return(token)
	sessions.EXPECT().SaveSession(gomock.Any(), models.Session{Identity: fresh, Token: token}).Return(nil)

	identity, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "Ana María", identity.Username)
}

func TestClientAuthService_RestoreSession_RevokedOnServer(t *testing.T) {
	svc, gateway, sessions := newTestAuthSvc(t)
	token := signedToken(t, 3, time.Hour)

	sessions.EXPECT().LoadSession(gomock.Any()).Return(models.Session{Identity: ana, Token: token}, nil)
	gateway.EXPECT().SetToken(token)
	gateway.EXPECT().CurrentSession(gomock.Any()).Return(nil, nil)
	sessions.EXPECT().ClearSession(gomock.Any()).Return(nil)

	identity, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestClientAuthService_RestoreSession_ServerUnreachableKeepsSession(t *testing.T) {
	svc, gateway, sessions := newTestAuthSvc(t)
	token := signedToken(t, 3, time.Hour)

	sessions.EXPECT().LoadSession(gomock.Any()).Return(models.Session{Identity: ana, Token: token}, nil)
	gateway.EXPECT().SetToken(token)
	gateway.EXPECT().CurrentSession(gomock.Any()).Return(nil, errors.New("dial tcp: connection refused"))
	gateway.EXPECT().SetToken("")

	identity, err := svc.RestoreSession(context.Background())
	assert.Error(t, err)
	assert.Nil(t, identity)
}

// ── Profile ──────────────────────────────────────────────────────────────────

func TestClientAuthService_UpdateProfile_NothingToUpdate(t *testing.T) {
	svc, _, _ := newTestAuthSvc(t)

	_, err := svc.UpdateProfile(context.Background(), " ", "", "")
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestClientAuthService_UpdateProfile_RemembersNewIdentity(t *testing.T) {
	svc, gateway, sessions := newTestAuthSvc(t)
	renamed := ana
	renamed.Username = "Ana María"

	gateway.EXPECT().UpdateProfile(gomock.Any(), models.ProfileUpdateRequest{Username: "Ana María"}).Return(renamed, nil)
	gateway.EXPECT().Token().Return("tok")
	sessions.EXPECT().SaveSession(gomock.Any(), models.Session{Identity: renamed, Token: "tok"}).Return(nil)

	got, err := svc.UpdateProfile(context.Background(), "Ana María", "", "")
	require.NoError(t, err)
	assert.Equal(t, renamed, got)
}

func TestClientAuthService_DeleteAccount(t *testing.T) {
	svc, gateway, sessions := newTestAuthSvc(t)

	gateway.EXPECT().DeleteAccount(gomock.Any()).Return(nil)
	sessions.EXPECT().ClearSession(gomock.Any()).Return(nil)

	require.NoError(t, svc.DeleteAccount(context.Background()))
}

func TestClientAuthService_DeleteAccount_FailureKeepsSession(t *testing.T) {
	svc, gateway, _ := newTestAuthSvc(t)

	gateway.EXPECT().DeleteAccount(gomock.Any()).Return(fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgUserNotFound))

	err := svc.DeleteAccount(context.Background())
	assert.ErrorIs(t, err, ErrNotSignedIn)
}
