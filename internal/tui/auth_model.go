// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/models"
)

type authScreen int

const (
	authWelcome authScreen = iota
	authSignIn
	authSignUp
)

var welcomeItems = []string{"Iniciar sesión", "Crear cuenta"}

// authModel is the sign-in / sign-up program. It quits once a session is
// established or the user leaves.
type authModel struct {
	ctx   context.Context
	auth  service.ClientAuthService
	build models.AppBuildInfo

	screen        authScreen
	welcomeIdx    int
	signIn        form
	signUp        form
	showBuildInfo bool

	identity   *models.Identity
	quitByUser bool
}

func newAuthModel(ctx context.Context, auth service.ClientAuthService, build models.AppBuildInfo) authModel {
	return authModel{
		ctx:    ctx,
		auth:   auth,
		build:  build,
		signIn: newSignInForm(),
		signUp: newSignUpForm(),
	}
}

func newSignInForm() form {
	return newForm(
		fieldSpec{label: "Email", required: true},
		fieldSpec{label: "Contraseña", required: true, secret: true},
	)
}

func newSignUpForm() form {
	return newForm(
		fieldSpec{label: "Usuario", required: true, limit: 64},
		fieldSpec{label: "Email", required: true},
		fieldSpec{label: "Contraseña", required: true, secret: true},
	)
}

func (m authModel) Init() tea.Cmd {
	return nil
}

func (m authModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.signIn.submitting = false
		m.signUp.submitting = false
		if msg.err != nil {
			m.currentForm().errMsg = humanizeError(msg.err)
			return m, nil
		}
		identity := msg.identity
		m.identity = &identity
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitByUser = true
			return m, tea.Quit
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	}

	switch m.screen {
	case authWelcome:
		return m.updateWelcome(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m authModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcomeIdx > 0 {
			m.welcomeIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcomeIdx < len(welcomeItems)-1 {
			m.welcomeIdx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.welcomeIdx == 0 {
			m.screen = authSignIn
		} else {
			m.screen = authSignUp
		}
	case key.Matches(keyMsg, keys.buildInfo):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	}
	return m, nil
}

func (m authModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := m.currentForm()

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			f.errMsg = ""
			m.screen = authWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab), keyMsg.Type == tea.KeyDown:
			f.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab), keyMsg.Type == tea.KeyUp:
			f.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if f.submitting {
				return m, nil
			}
			if label, missing := f.missingRequired(); missing {
				f.errMsg = label + " es obligatorio"
				return m, nil
			}
			f.errMsg = ""
			f.submitting = true
			return m, m.cmdSubmit()
		}
	}

	return m, f.update(msg)
}

func (m *authModel) currentForm() *form {
	if m.screen == authSignUp {
		return &m.signUp
	}
	return &m.signIn
}

func (m authModel) cmdSubmit() tea.Cmd {
	ctx, auth := m.ctx, m.auth

	if m.screen == authSignUp {
		username, email, password := m.signUp.value(0), m.signUp.value(1), m.signUp.value(2)
		return func() tea.Msg {
			identity, err := auth.SignUp(ctx, username, email, password)
			return authDoneMsg{identity: identity, err: err}
		}
	}

	email, password := m.signIn.value(0), m.signIn.value(1)
	return func() tea.Msg {
		identity, err := auth.SignIn(ctx, email, password)
		return authDoneMsg{identity: identity, err: err}
	}
}

func (m authModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.build))
	}

	var page string
	switch m.screen {
	case authSignIn:
		page = renderPage("INICIAR SESIÓN", m.signIn.view("Entrar"), "esc: volver │ tab: siguiente campo │ enter: confirmar")
	case authSignUp:
		page = renderPage("CREAR CUENTA", m.signUp.view("Registrarse"), "esc: volver │ tab: siguiente campo │ enter: confirmar")
	default:
		var b strings.Builder
		for i, item := range welcomeItems {
			cursor := "  "
			if i == m.welcomeIdx {
				cursor = "> "
			}
			b.WriteString(cursor)
			b.WriteString(item)
			b.WriteString("\n")
		}
		page = renderPage("BIZDESK", strings.TrimRight(b.String(), "\n"), "↑/↓: mover │ enter: elegir │ v: versión │ q: salir")
	}

	return appStyle.Render(page)
}
