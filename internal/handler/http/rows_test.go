// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/models"
)

// ─────────────────────────────────────────────
// GET /rest/v1/{table}
// ─────────────────────────────────────────────

func TestListRows(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.rows.EXPECT().List(gomock.Any(), models.TableClients).Return([]models.Record{
		{"id": int64(1), "name": "Ana"},
		{"id": int64(2), "name": "Beto"},
	}, nil)

	rr := serve(h, authedRequest(http.MethodGet, "/rest/v1/clients", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Ana"},{"id":2,"name":"Beto"}]`, rr.Body.String())
}

func TestListRows_EmptyTableIsEmptyArray(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.rows.EXPECT().List(gomock.Any(), models.TableSuppliers).Return([]models.Record{}, nil)

	rr := serve(h, authedRequest(http.MethodGet, "/rest/v1/suppliers", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListRows_UnknownTable(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)

	rr := serve(h, authedRequest(http.MethodGet, "/rest/v1/invoices", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgUnknownTable, errorMessage(t, rr))
}

func TestCountRows(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.rows.EXPECT().Count(gomock.Any(), models.TableClients).Return(int64(12), nil)

	rr := serve(h, authedRequest(http.MethodGet, "/rest/v1/clients/count", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":12}`, rr.Body.String())
}

// ─────────────────────────────────────────────
// POST / PATCH / DELETE
// ─────────────────────────────────────────────

func TestInsertRow_KeepsNumbersExact(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)

	d.rows.EXPECT().Insert(gomock.Any(), models.TableClients, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ models.Table, record models.Record) (models.Record, error) {
			assert.Equal(t, json.Number("5550101"), record["phone"])
			return models.Record{"id": int64(3), "name": "Ana", "phone": "5550101"}, nil
		})

	rr := serve(h, authedRequest(http.MethodPost, "/rest/v1/clients", `{"name":"Ana","phone":5550101}`))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":3,"name":"Ana","phone":"5550101"}`, rr.Body.String())
}

func TestInsertRow_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		insertErr  error
		wantStatus int
		wantMsg    string
	}{
		{name: "not an object", body: `["x"]`, wantStatus: http.StatusBadRequest, wantMsg: app.MsgInvalidDataProvided},
		{name: "null body", body: `null`, wantStatus: http.StatusBadRequest, wantMsg: app.MsgInvalidDataProvided},
		{
			name:       "unknown column",
			body:       `{"nickname":"x"}`,
			insertErr:  fmt.Errorf("%w: clients.nickname", store.ErrUnknownColumn),
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgUnknownColumn,
		},
		{
			name:       "blank name",
			body:       `{"name":""}`,
			insertErr:  fmt.Errorf("%w: check violation", store.ErrInvalidRecord),
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidRecord,
		},
		{
			name:       "no writable fields",
			body:       `{"id":4}`,
			insertErr:  store.ErrEmptyRecord,
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgEmptyRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newTestHandler(t)
			d.expectValidToken(7)
			if tt.insertErr != nil {
				d.rows.EXPECT().Insert(gomock.Any(), models.TableClients, gomock.Any()).Return(nil, tt.insertErr)
			}

			rr := serve(h, authedRequest(http.MethodPost, "/rest/v1/clients", tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rr))
		})
	}
}

func TestUpdateRow(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.rows.EXPECT().Update(gomock.Any(), models.TableSuppliers, int64(4), models.Record{"type": "Logística"}).
		Return(models.Record{"id": int64(4), "name": "Globex", "type": "Logística"}, nil)

	rr := serve(h, authedRequest(http.MethodPatch, "/rest/v1/suppliers/4", `{"type":"Logística"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":4,"name":"Globex","type":"Logística"}`, rr.Body.String())
}

func TestUpdateRow_Missing(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.rows.EXPECT().Update(gomock.Any(), models.TableClients, int64(99), gomock.Any()).Return(nil, store.ErrRowNotFound)

	rr := serve(h, authedRequest(http.MethodPatch, "/rest/v1/clients/99", `{"name":"x"}`))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgRowNotFound, errorMessage(t, rr))
}

func TestRowID_Invalid(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		t.Run(id, func(t *testing.T) {
			h, d := newTestHandler(t)
			d.expectValidToken(7)

			rr := serve(h, authedRequest(http.MethodDelete, "/rest/v1/clients/"+id, nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, app.MsgInvalidRowID, errorMessage(t, rr))
		})
	}
}

func TestDeleteRow(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.rows.EXPECT().Delete(gomock.Any(), models.TableClients, int64(5)).Return(nil)

	rr := serve(h, authedRequest(http.MethodDelete, "/rest/v1/clients/5", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestDeleteRow_Missing(t *testing.T) {
	h, d := newTestHandler(t)
	d.expectValidToken(7)
	d.rows.EXPECT().Delete(gomock.Any(), models.TableClients, int64(5)).Return(store.ErrRowNotFound)

	rr := serve(h, authedRequest(http.MethodDelete, "/rest/v1/clients/5", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
