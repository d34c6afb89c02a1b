// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/internal/utils"
	"github.com/MKhiriev/bizdesk/models"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap translates service and store sentinels into a status code
// and the message clients match on. No error wraps two keys.
var errorStatusMap = map[error]errorResponse{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrWrongPassword:           {http.StatusUnauthorized, app.MsgInvalidEmailPassword},
	service.ErrTokenIsExpired:          {http.StatusUnauthorized, app.MsgTokenIsExpired},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	service.ErrInvalidRowID:            {http.StatusBadRequest, app.MsgInvalidRowID},
	models.ErrUnknownTable:             {http.StatusBadRequest, app.MsgUnknownTable},

	store.ErrEmailAlreadyExists: {http.StatusConflict, app.MsgEmailAlreadyExists},
	store.ErrNoUserWasFound:     {http.StatusNotFound, app.MsgUserNotFound},
	store.ErrRowNotFound:        {http.StatusNotFound, app.MsgRowNotFound},
	store.ErrUnknownColumn:      {http.StatusBadRequest, app.MsgUnknownColumn},
	store.ErrEmptyRecord:        {http.StatusBadRequest, app.MsgEmptyRecord},
	store.ErrInvalidRecord:      {http.StatusBadRequest, app.MsgInvalidRecord},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeServiceError logs err and answers with its mapped status. Internal
// details never reach the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Warn().Err(err).Msg(msg)
	}

	utils.WriteError(w, resp.message, resp.status)
}
