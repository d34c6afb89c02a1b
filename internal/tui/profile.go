// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type profileTab struct {
	editing       bool
	confirmDelete bool
	form          form
}

func newProfileForm(username, email string) form {
	return newForm(
		fieldSpec{label: "Usuario", limit: 64},
		fieldSpec{label: "Email"},
		fieldSpec{label: "Nueva contraseña", secret: true},
	).withPlaceholders(username, email)
}

func (m mainModel) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := &m.profile
	keyMsg, isKey := msg.(tea.KeyMsg)

	if p.confirmDelete {
		if !isKey {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, keys.yes):
			p.confirmDelete = false
			return m, m.cmdDeleteAccount()
		case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
			p.confirmDelete = false
		}
		return m, nil
	}

	if p.editing {
		if !isKey {
			return m, p.form.update(msg)
		}
		switch {
		case key.Matches(keyMsg, keys.esc):
			if !p.form.submitting {
				p.editing = false
			}
			return m, nil
		case key.Matches(keyMsg, keys.tab), keyMsg.Type == tea.KeyDown:
			p.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab), keyMsg.Type == tea.KeyUp:
			p.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if p.form.submitting {
				return m, nil
			}
			p.form.errMsg = ""
			p.form.submitting = true
			return m, m.cmdUpdateProfile()
		}
		return m, p.form.update(msg)
	}

	if !isKey {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.edit):
		p.form = newProfileForm(m.identity.Username, m.identity.Email)
		p.editing = true
	case key.Matches(keyMsg, keys.deleteAcc):
		p.confirmDelete = true
	}
	return m, nil
}

func (m mainModel) onProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	m.profile.form.submitting = false
	if msg.err != nil {
		m.profile.form.errMsg = humanizeError(msg.err)
		return m, nil
	}

	m.identity = msg.identity
	m.profile.editing = false
	m.status = "Perfil actualizado"
	return m, cmdClearStatus()
}

func (m mainModel) cmdUpdateProfile() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	username, email, password := m.profile.form.value(0), m.profile.form.value(1), m.profile.form.value(2)

	return func() tea.Msg {
		identity, err := auth.UpdateProfile(ctx, username, email, password)
		return profileSavedMsg{identity: identity, err: err}
	}
}

func (m mainModel) cmdDeleteAccount() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return accountDeletedMsg{err: auth.DeleteAccount(ctx)}
	}
}

func (m mainModel) profileView() (string, string) {
	if m.profile.editing {
		return "Deja un campo vacío para conservarlo\n\n" + m.profile.form.view("Guardar"),
			"esc: cancelar │ tab: siguiente campo │ enter: guardar"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Usuario:  %s\n", valueOrDash(m.identity.Username))
	fmt.Fprintf(&b, "Email:    %s", valueOrDash(m.identity.Email))

	return b.String(), "e: editar perfil │ x: eliminar cuenta"
}
