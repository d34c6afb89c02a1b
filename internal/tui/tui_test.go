// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/models"
)

// keyPress builds the KeyMsg a terminal would send for s.
func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNew_RequiresServices(t *testing.T) {
	_, err := New(nil, models.AppBuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServices)

	_, err = New(&service.ClientServices{}, models.AppBuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServices)
}

func TestSink_ForwardsSnapshots(t *testing.T) {
	var got []tea.Msg
	sink := NewSink(func(msg tea.Msg) { got = append(got, msg) })

	sink.Clients([]models.Client{{ID: 1, Name: "Ana"}})
	sink.Suppliers([]models.Supplier{{ID: 2, Name: "Acme"}})
	sink.ClientPreview(nil)
	sink.SupplierPreview(nil)
	sink.ClientCount([]models.Record{{"id": 1}, {"id": 2}})
	sink.SupplierCount([]models.Record{})

	require.Len(t, got, 6)
	assert.Equal(t, clientsMsg{{ID: 1, Name: "Ana"}}, got[0])
	assert.Equal(t, suppliersMsg{{ID: 2, Name: "Acme"}}, got[1])
	assert.IsType(t, clientPreviewMsg{}, got[2])
	assert.IsType(t, supplierPreviewMsg{}, got[3])
	assert.Equal(t, clientCountMsg(2), got[4])
	assert.Equal(t, supplierCountMsg(0), got[5])
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"wrong password", service.ErrWrongPassword, "Email o contraseña incorrectos"},
		{"name required", service.ErrNameRequired, "El nombre es obligatorio"},
		{"email taken", service.ErrEmailAlreadyExists, "Ya existe una cuenta con ese email"},
		{"network", assert.AnError, assert.AnError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}

func TestHumanizeServerUnavailableError(t *testing.T) {
	err := &netError{"dial tcp 127.0.0.1:8080: connect: connection refused"}

	assert.Equal(t, "Sin conexión o servidor no disponible", humanizeError(err))
}

type netError struct{ msg string }

func (e *netError) Error() string { return e.msg }

func TestFitText(t *testing.T) {
	assert.Equal(t, "Ana", fitText("Ana", 10))
	assert.Equal(t, "Proveed...", fitText("Proveedores del Sur", 10))
	assert.Equal(t, "Ñañ", fitText("Ñañaña", 3))
	assert.Equal(t, "Ana  ", padRight("Ana", 5))
}
