// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/models"
)

type suppliersTab struct {
	listState
	rows []models.Supplier
	sort service.SortState
}

func newSuppliersTab() suppliersTab {
	return suppliersTab{
		listState: newListState("filtrar por nombre, contacto o tipo"),
		sort:      service.SortState{Column: service.SupplierColumnName},
	}
}

func newSupplierForm(editing bool) form {
	return newForm(
		fieldSpec{label: "Nombre", required: !editing},
		fieldSpec{label: "Contacto"},
		fieldSpec{label: "Email"},
		fieldSpec{label: "Teléfono", limit: 32},
		fieldSpec{label: "Tipo", limit: 64},
	)
}

func (t *suppliersTab) setRows(rows []models.Supplier) {
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

func (t suppliersTab) visible() []models.Supplier {
	return service.SortSuppliers(service.FilterSuppliers(t.rows, t.search.Value()), t.sort)
}

func (t suppliersTab) selected() (models.Supplier, bool) {
	for _, s := range t.rows {
		if s.ID == t.selectedID {
			return s, true
		}
	}
	return models.Supplier{}, false
}

func (t suppliersTab) input() models.SupplierInput {
	return models.SupplierInput{
		Name:       t.form.value(0),
		PersonName: t.form.value(1),
		Email:      t.form.value(2),
		Phone:      t.form.value(3),
		Type:       t.form.value(4),
	}
}

func (m mainModel) updateSuppliers(msg tea.Msg) (tea.Model, tea.Cmd) {
	t := &m.suppliers

	switch {
	case t.mode == modeEdit || t.mode == modeCreate:
		return m, t.updateForm(msg, m.cmdSaveSupplier)
	case t.searching:
		return m, t.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if t.mode == modeDetail {
		s, _ := t.selected()
		switch {
		case key.Matches(keyMsg, keys.esc):
			t.mode = modeList
		case key.Matches(keyMsg, keys.edit):
			t.form = newSupplierForm(true).withPlaceholders(s.Name, s.PersonName, s.Email, s.Phone, s.Type)
			t.mode = modeEdit
		case key.Matches(keyMsg, keys.copyEmail):
			return m, m.cmdCopy("Email", s.Email)
		case key.Matches(keyMsg, keys.copyPhone):
			return m, m.cmdCopy("Teléfono", s.Phone)
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
		t.form = newSupplierForm(false)
		t.mode = modeCreate
	case key.Matches(keyMsg, keys.search):
		return m, t.startSearch()
	case key.Matches(keyMsg, keys.esc):
		t.search.SetValue("")
		t.idx = 0
	case key.Matches(keyMsg, keys.sortName):
		t.sort = service.ToggleSort(t.sort, service.SupplierColumnName)
	case key.Matches(keyMsg, keys.sortCont):
		t.sort = service.ToggleSort(t.sort, service.SupplierColumnPersonName)
	case key.Matches(keyMsg, keys.sortType):
		t.sort = service.ToggleSort(t.sort, service.SupplierColumnType)
	}
	return m, nil
}

func (m mainModel) cmdSaveSupplier() tea.Cmd {
	ctx, directory := m.ctx, m.directory
	in := m.suppliers.input()

	if m.suppliers.mode == modeCreate {
		return func() tea.Msg {
			return savedMsg{status: "Proveedor creado", err: directory.CreateSupplier(ctx, in)}
		}
	}

	id := m.suppliers.selectedID
	return func() tea.Msg {
		return savedMsg{status: "Proveedor actualizado", err: directory.UpdateSupplier(ctx, id, in)}
	}
}

// sortHeader renders a column title with an arrow when the table is sorted
// by it.
func (t suppliersTab) sortHeader(title, column string) string {
	if t.sort.Column != column {
		return title
	}
	if t.sort.Direction == service.SortDesc {
		return title + " ▼"
	}
	return title + " ▲"
}

func (m mainModel) suppliersView() (string, string) {
	t := m.suppliers

	switch t.mode {
	case modeCreate:
		return "Nuevo proveedor\n\n" + t.form.view("Guardar"), "esc: cancelar │ tab: siguiente campo │ enter: guardar"
	case modeEdit:
		s, _ := t.selected()
		return "Editar " + s.Name + " (vacío = sin cambios)\n\n" + t.form.view("Guardar"), "esc: cancelar │ tab: siguiente campo │ enter: guardar"
	case modeDetail:
		s, _ := t.selected()
		var b strings.Builder
		b.WriteString(avatarStyle.Render(service.Initial(s.Name)))
		b.WriteString(" ")
		b.WriteString(titleStyle.Render(s.Name))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Contacto:  %s\n", valueOrDash(s.PersonName))
		fmt.Fprintf(&b, "Email:     %s\n", valueOrDash(s.Email))
		fmt.Fprintf(&b, "Teléfono:  %s\n", valueOrDash(s.Phone))
		fmt.Fprintf(&b, "Tipo:      %s\n", valueOrDash(s.Type))
		fmt.Fprintf(&b, "Alta:      %s", formatDate(s.CreatedAt))
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
		b.WriteString("Ningún proveedor coincide con el filtro")
	case len(rows) == 0:
		b.WriteString("Todavía no hay proveedores")
	default:
		fmt.Fprintf(&b, "  %s │ %s │ %s\n",
			padRight(t.sortHeader("Nombre", service.SupplierColumnName), 24),
			padRight(t.sortHeader("Contacto", service.SupplierColumnPersonName), 20),
			t.sortHeader("Tipo", service.SupplierColumnType))
		for i, s := range rows {
			cursor := "  "
			if i == t.idx {
				cursor = "> "
			}
			fmt.Fprintf(&b, "%s%s │ %s │ %s\n", cursor,
				padRight(fitText(s.Name, 24), 24),
				padRight(fitText(valueOrDash(s.PersonName), 20), 20),
				valueOrDash(s.Type))
		}
	}

	return strings.TrimRight(b.String(), "\n"), "↑/↓: mover │ enter: abrir │ /: filtrar │ 1/2/3: ordenar │ n: nuevo"
}
