// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/utils"
	"github.com/MKhiriev/bizdesk/models"
)

func (h *Handler) listRows(w http.ResponseWriter, r *http.Request) {
	table, ok := tableParam(w, r)
	if !ok {
		return
	}

	rows, err := h.services.RowService.List(r.Context(), table)
	if err != nil {
		writeServiceError(w, r, err, "list rows failed")
		return
	}

	_, _ = utils.WriteJSON(w, rows, http.StatusOK)
}

func (h *Handler) countRows(w http.ResponseWriter, r *http.Request) {
	table, ok := tableParam(w, r)
	if !ok {
		return
	}

	count, err := h.services.RowService.Count(r.Context(), table)
	if err != nil {
		writeServiceError(w, r, err, "count rows failed")
		return
	}

	_, _ = utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}

func (h *Handler) insertRow(w http.ResponseWriter, r *http.Request) {
	table, ok := tableParam(w, r)
	if !ok {
		return
	}

	record, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	inserted, err := h.services.RowService.Insert(r.Context(), table, record)
	if err != nil {
		writeServiceError(w, r, err, "insert row failed")
		return
	}

	_, _ = utils.WriteJSON(w, inserted, http.StatusCreated)
}

func (h *Handler) updateRow(w http.ResponseWriter, r *http.Request) {
	table, ok := tableParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	partial, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	updated, err := h.services.RowService.Update(r.Context(), table, id, partial)
	if err != nil {
		writeServiceError(w, r, err, "update row failed")
		return
	}

	_, _ = utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteRow(w http.ResponseWriter, r *http.Request) {
	table, ok := tableParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.services.RowService.Delete(r.Context(), table, id); err != nil {
		writeServiceError(w, r, err, "delete row failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func tableParam(w http.ResponseWriter, r *http.Request) (models.Table, bool) {
	table, err := models.ParseTable(chi.URLParam(r, "table"))
	if err != nil {
		writeServiceError(w, r, err, "unknown table requested")
		return "", false
	}
	return table, true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeServiceError(w, r, fmt.Errorf("%w: %q", service.ErrInvalidRowID, chi.URLParam(r, "id")), "invalid row id")
		return 0, false
	}
	return id, true
}

// decodeRecord reads a JSON object body. Numbers are kept as [json.Number]
// so phone-like values are not rounded through float64.
func decodeRecord(w http.ResponseWriter, r *http.Request) (models.Record, bool) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var record models.Record
	if err := dec.Decode(&record); err != nil || record == nil {
		logger.FromRequest(r).Warn().Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return nil, false
	}
	return record, true
}
