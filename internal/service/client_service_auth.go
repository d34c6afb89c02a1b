// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/internal/utils"
	"github.com/MKhiriev/bizdesk/models"
)

type clientAuthService struct {
	sessions store.LocalSessionRepository
	gateway  adapter.SessionGateway
	now      func() time.Time
	logger   *logger.Logger
}

func NewClientAuthService(sessions store.LocalSessionRepository, gateway adapter.SessionGateway, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{sessions: sessions, gateway: gateway, now: time.Now, logger: logger}
}

func (a *clientAuthService) SignUp(ctx context.Context, username, email, password string) (models.Identity, error) {
	req := models.SignUpRequest{
		Username: strings.TrimSpace(username),
		Email:    normalizeEmail(email),
		Password: password,
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.Identity{}, ErrInvalidDataProvided
	}

	identity, err := a.gateway.SignUp(ctx, req)
	if err != nil {
		return models.Identity{}, mapAdapterError(err)
	}

	a.remember(ctx, identity)
	return identity, nil
}

func (a *clientAuthService) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	req := models.SignInRequest{Email: normalizeEmail(email), Password: password}
	if req.Email == "" || req.Password == "" {
		return models.Identity{}, ErrInvalidDataProvided
	}

	identity, err := a.gateway.SignIn(ctx, req)
	if err != nil {
		return models.Identity{}, mapAdapterError(err)
	}

	a.remember(ctx, identity)
	return identity, nil
}

func (a *clientAuthService) SignOut(ctx context.Context) error {
	err := a.gateway.SignOut(ctx)
	a.forget(ctx)

	if err != nil && !errors.Is(mapAdapterError(err), ErrNotSignedIn) {
		return mapAdapterError(err)
	}
	return nil
}

func (a *clientAuthService) CurrentSession(ctx context.Context) (*models.Identity, error) {
	identity, err := a.gateway.CurrentSession(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return identity, nil
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (*models.Identity, error) {
	saved, err := a.sessions.LoadSession(ctx)
	if errors.Is(err, store.ErrNoLocalSession) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading local session: %w", err)
	}

	token, err := utils.ParseUnverifiedToken(saved.Token)
	if err != nil || utils.IsTokenExpired(token, a.now()) {
		a.logger.Info().Msg("stored session is expired or unreadable, discarding it")
		a.forget(ctx)
		return nil, nil
	}

	a.gateway.SetToken(saved.Token)
	identity, err := a.gateway.CurrentSession(ctx)
	if err != nil {
		// the backend may just be unreachable; keep the session for later
		a.gateway.SetToken("")
		return nil, mapAdapterError(err)
	}
	if identity == nil {
		a.forget(ctx)
		return nil, nil
	}

	a.remember(ctx, *identity)
	return identity, nil
}

func (a *clientAuthService) UpdateProfile(ctx context.Context, username, email, password string) (models.Identity, error) {
	req := models.ProfileUpdateRequest{
		Username: strings.TrimSpace(username),
		Email:    normalizeEmail(email),
		Password: password,
	}
	if req.Username == "" && req.Email == "" && req.Password == "" {
		return models.Identity{}, ErrNothingToUpdate
	}

	identity, err := a.gateway.UpdateProfile(ctx, req)
	if err != nil {
		return models.Identity{}, mapAdapterError(err)
	}

	a.remember(ctx, identity)
	return identity, nil
}

func (a *clientAuthService) DeleteAccount(ctx context.Context) error {
	if err := a.gateway.DeleteAccount(ctx); err != nil {
		return mapAdapterError(err)
	}

	a.forget(ctx)
	return nil
}

// remember stores the current token with identity. A failure only costs the
// user a sign-in on the next start, so it is logged and not returned.
func (a *clientAuthService) remember(ctx context.Context, identity models.Identity) {
	token := a.gateway.Token()
	if token == "" {
		return
	}

	err := a.sessions.SaveSession(ctx, models.Session{Identity: identity, Token: token})
	if err != nil {
		a.logger.Warn().Err(err).Msg("could not save local session")
	}
}

func (a *clientAuthService) forget(ctx context.Context) {
	if err := a.sessions.ClearSession(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("could not clear local session")
	}
}
