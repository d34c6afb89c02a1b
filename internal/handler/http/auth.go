// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/utils"
	"github.com/MKhiriev/bizdesk/models"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err, "user registration failed")
		return
	}

	// the account exists at this point; only the session could not be opened
	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, app.MsgRegistrationFailed, http.StatusBadGateway)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Msg("user registered")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	_, _ = utils.WriteJSON(w, registeredUser.Identity(), http.StatusCreated)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "user login failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, app.MsgLoginFailed, http.StatusBadGateway)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	_, _ = utils.WriteJSON(w, foundUser.Identity(), http.StatusOK)
}

// signOut acknowledges the logout. Tokens are stateless and simply expire;
// the client drops its copy.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)
	logger.FromRequest(r).Debug().Int64("id", userID).Msg("user signed out")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeServiceError(w, r, errors.New("no user id in authenticated request"), "get user")
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "get user failed")
		return
	}

	_, _ = utils.WriteJSON(w, user.Identity(), http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeServiceError(w, r, errors.New("no user id in authenticated request"), "update user")
		return
	}

	var req models.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "profile update failed")
		return
	}

	_, _ = utils.WriteJSON(w, user.Identity(), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeServiceError(w, r, errors.New("no user id in authenticated request"), "delete user")
		return
	}

	if err := h.services.AuthService.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, r, err, "account deletion failed")
		return
	}

	logger.FromRequest(r).Info().Int64("id", userID).Msg("account deleted")
	w.WriteHeader(http.StatusNoContent)
}
