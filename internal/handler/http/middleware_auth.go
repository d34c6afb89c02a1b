// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/utils"
)

// auth enforces JWT bearer authentication.
//
// The token is validated with [service.AuthService.ParseToken] and the user
// id stored in the request context via [utils.WithUserID]. Requests are
// rejected with 401 when:
//   - the "Authorization" header is absent or not "Bearer <token>";
//   - the token has expired ([app.MsgTokenIsExpired]);
//   - the token is otherwise invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := tokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Warn().Err(err).Send()
			utils.WriteError(w, app.MsgMissingToken, http.StatusUnauthorized)
			return
		}

		userID, ok := h.authenticate(w, r, tokenString)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), userID)))
	})
}

// authenticate parses tokenString and writes the 401 response itself when
// the token is rejected.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, tokenString string) (int64, bool) {
	token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
	if err == nil {
		return token.UserID, true
	}

	log := logger.FromRequest(r)
	switch {
	case errors.Is(err, service.ErrTokenIsExpired):
		log.Warn().Err(err).Msg("token expired")
		utils.WriteError(w, app.MsgTokenIsExpired, http.StatusUnauthorized)
	default:
		log.Warn().Err(err).Msg("error occurred during parsing token")
		utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
	}
	return 0, false
}

func tokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", errors.Join(ErrInvalidAuthorizationHeader, err)
	}
	return token, nil
}

// userIDFromRequest returns the id stored by [Handler.auth].
func userIDFromRequest(r *http.Request) (int64, bool) {
	return utils.GetUserIDFromContext(r.Context())
}
