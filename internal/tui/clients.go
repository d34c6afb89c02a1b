// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/models"
)

type clientsTab struct {
	listState
	rows []models.Client
}

func newClientsTab() clientsTab {
	return clientsTab{listState: newListState("buscar por nombre o email")}
}

// newClientForm returns the create form, or the edit form when editing is
// set: on edit no field is required and blanks keep the stored value.
func newClientForm(editing bool) form {
	return newForm(
		fieldSpec{label: "Nombre", required: !editing},
		fieldSpec{label: "Email"},
		fieldSpec{label: "Teléfono", limit: 32},
	)
}

func (t *clientsTab) setRows(rows []models.Client) {
	t.rows = rows
	t.loaded = true

	if t.mode == modeDetail || t.mode == modeEdit {
		if _, ok := t.selected(); !ok && !t.form.submitting {
			t.mode = modeList
			t.selectedID = 0
		}
	}
	t.clamp(len(t.visible()))
}

func (t clientsTab) visible() []models.Client {
	return service.SortClientsByName(service.FilterClients(t.rows, t.search.Value()))
}

func (t clientsTab) selected() (models.Client, bool) {
	for _, c := range t.rows {
		if c.ID == t.selectedID {
			return c, true
		}
	}
	return models.Client{}, false
}

func (t clientsTab) input() models.ClientInput {
	return models.ClientInput{
		Name:  t.form.value(0),
		Email: t.form.value(1),
		Phone: t.form.value(2),
	}
}

func (m mainModel) updateClients(msg tea.Msg) (tea.Model, tea.Cmd) {
	t := &m.clients

	switch {
	case t.mode == modeEdit || t.mode == modeCreate:
		return m, t.updateForm(msg, m.cmdSaveClient)
	case t.searching:
		return m, t.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if t.mode == modeDetail {
		c, _ := t.selected()
		switch {
		case key.Matches(keyMsg, keys.esc):
			t.mode = modeList
		case key.Matches(keyMsg, keys.edit):
			t.form = newClientForm(true).withPlaceholders(c.Name, c.Email, c.Phone)
			t.mode = modeEdit
		case key.Matches(keyMsg, keys.copyEmail):
			return m, m.cmdCopy("Email", c.Email)
		case key.Matches(keyMsg, keys.copyPhone):
			return m, m.cmdCopy("Teléfono", c.Phone)
		}
		return m, nil
	}

	rows := t.visible()
	if t.moveCursor(keyMsg, len(rows)) {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.enter):
		if len(rows) > 0 {
			t.selectedID = rows[t.idx].ID
			t.mode = modeDetail
		}
	case key.Matches(keyMsg, keys.newItem):
		t.form = newClientForm(false)
		t.mode = modeCreate
	case key.Matches(keyMsg, keys.search):
		return m, t.startSearch()
	case key.Matches(keyMsg, keys.esc):
		t.search.SetValue("")
		t.idx = 0
	}
	return m, nil
}

func (m mainModel) cmdSaveClient() tea.Cmd {
	ctx, directory := m.ctx, m.directory
	in := m.clients.input()

	if m.clients.mode == modeCreate {
		return func() tea.Msg {
			return savedMsg{status: "Cliente creado", err: directory.CreateClient(ctx, in)}
		}
	}

	id := m.clients.selectedID
	return func() tea.Msg {
		return savedMsg{status: "Cliente actualizado", err: directory.UpdateClient(ctx, id, in)}
	}
}

func (m mainModel) clientsView() (string, string) {
	t := m.clients

	switch t.mode {
	case modeCreate:
		return "Nuevo cliente\n\n" + t.form.view("Guardar"), "esc: cancelar │ tab: siguiente campo │ enter: guardar"
	case modeEdit:
		c, _ := t.selected()
		return "Editar " + c.Name + " (vacío = sin cambios)\n\n" + t.form.view("Guardar"), "esc: cancelar │ tab: siguiente campo │ enter: guardar"
	case modeDetail:
		c, _ := t.selected()
		var b strings.Builder
		b.WriteString(avatarStyle.Render(service.Initial(c.Name)))
		b.WriteString(" ")
		b.WriteString(titleStyle.Render(c.Name))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Email:     %s\n", valueOrDash(c.Email))
		fmt.Fprintf(&b, "Teléfono:  %s\n", valueOrDash(c.Phone))
		fmt.Fprintf(&b, "Alta:      %s", formatDate(c.CreatedAt))
		return b.String(), "esc: volver │ e: editar │ c: copiar email │ p: copiar teléfono"
	}

	var b strings.Builder
	b.WriteString(t.search.View())
	b.WriteString("\n\n")

	rows := t.visible()
	switch {
	case !t.loaded:
		b.WriteString("Cargando...")
	case len(rows) == 0 && strings.TrimSpace(t.search.Value()) != "":
		b.WriteString("Ningún cliente coincide con la búsqueda")
	case len(rows) == 0:
		b.WriteString("Todavía no hay clientes")
	default:
		for i, c := range rows {
			cursor := "  "
			if i == t.idx {
				cursor = "> "
			}
			fmt.Fprintf(&b, "%s[%s] %s %s %s\n", cursor, service.Initial(c.Name),
				padRight(fitText(c.Name, 24), 24),
				padRight(fitText(valueOrDash(c.Email), 28), 28),
				valueOrDash(c.Phone))
		}
	}

	return strings.TrimRight(b.String(), "\n"), "↑/↓: mover │ enter: abrir │ /: buscar │ n: nuevo"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006")
}
