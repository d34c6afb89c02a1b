// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/models"
)

type tab int

const (
	tabDashboard tab = iota
	tabClients
	tabSuppliers
	tabProfile
)

var tabTitles = []string{"Resumen", "Clientes", "Proveedores", "Perfil"}

// listMode is the sub-screen of the Clientes and Proveedores tabs.
type listMode int

const (
	modeList listMode = iota
	modeDetail
	modeEdit
	modeCreate
)

// mainModel is the signed-in window. Row data only ever arrives as
// snapshot messages; the model keeps no other copy of the backend.
type mainModel struct {
	ctx       context.Context
	auth      service.ClientAuthService
	directory service.ClientDirectoryService
	identity  models.Identity
	build     models.AppBuildInfo

	tab     tab
	spinner spinner.Model

	dashboard dashboardTab
	clients   clientsTab
	suppliers suppliersTab
	profile   profileTab

	status        string
	showError     bool
	errorOverlay  errorOverlayModel
	showBuildInfo bool

	// copyToClipboard is clipboard.WriteAll outside tests.
	copyToClipboard func(string) error

	logout bool
}

func newMainModel(ctx context.Context, services *service.ClientServices, identity models.Identity, build models.AppBuildInfo) mainModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return mainModel{
		ctx:             ctx,
		auth:            services.AuthService,
		directory:       services.DirectoryService,
		identity:        identity,
		build:           build,
		spinner:         s,
		dashboard:       newDashboardTab(),
		clients:         newClientsTab(),
		suppliers:       newSuppliersTab(),
		copyToClipboard: clipboard.WriteAll,
	}
}

func (m mainModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsMsg:
		m.clients.setRows(msg)
		return m, nil
	case suppliersMsg:
		m.suppliers.setRows(msg)
		return m, nil
	case clientPreviewMsg:
		m.dashboard.clientPreview = msg
		m.dashboard.clientPreviewLoaded = true
		return m, nil
	case supplierPreviewMsg:
		m.dashboard.supplierPreview = msg
		m.dashboard.supplierPreviewLoaded = true
		return m, nil
	case clientCountMsg:
		m.dashboard.clientCount = int(msg)
		return m, nil
	case supplierCountMsg:
		m.dashboard.supplierCount = int(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case savedMsg:
		return m.onSaved(msg)
	case profileSavedMsg:
		return m.onProfileSaved(msg)
	case accountDeletedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.logout = true
		return m, tea.Quit
	case signedOutMsg:
		// the local session is gone either way
		m.logout = true
		return m, tea.Quit
	case copiedMsg:
		if msg.err != nil {
			m.status = "No se pudo copiar: " + msg.err.Error()
		} else {
			m.status = msg.what + " copiado"
		}
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateTab(msg)
}

func (m mainModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}
	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	// text inputs and dialogs get every key
	if m.capturesKeys() {
		return m.updateTab(msg)
	}

	switch {
	case key.Matches(msg, keys.tab):
		m.tab = (m.tab + 1) % tab(len(tabTitles))
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.tab = (m.tab - 1 + tab(len(tabTitles))) % tab(len(tabTitles))
		return m, nil
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.signOut):
		return m, m.cmdSignOut()
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
		return m, nil
	}

	return m.updateTab(msg)
}

func (m mainModel) updateTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabClients:
		return m.updateClients(msg)
	case tabSuppliers:
		return m.updateSuppliers(msg)
	case tabProfile:
		return m.updateProfile(msg)
	default:
		return m, nil
	}
}

// capturesKeys reports whether the active tab is editing text or showing a
// dialog, in which case global shortcuts are off.
func (m mainModel) capturesKeys() bool {
	switch m.tab {
	case tabClients:
		return m.clients.capturesKeys()
	case tabSuppliers:
		return m.suppliers.capturesKeys()
	case tabProfile:
		return m.profile.editing || m.profile.confirmDelete
	default:
		return false
	}
}

func (m mainModel) loading() bool {
	return !m.clients.loaded || !m.suppliers.loaded || m.dashboard.loading()
}

func (m mainModel) onSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	target := &m.clients.listState
	if m.tab == tabSuppliers {
		target = &m.suppliers.listState
	}
	target.form.submitting = false

	if msg.err != nil {
		if target.mode == modeEdit || target.mode == modeCreate {
			target.form.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.showErrorf(humanizeError(msg.err))
		return m, nil
	}

	// the list itself is refreshed by the change subscription
	switch target.mode {
	case modeEdit:
		target.mode = modeDetail
	case modeCreate:
		target.mode = modeList
	}
	m.status = msg.status
	return m, cmdClearStatus()
}

func (m *mainModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m mainModel) cmdCopy(what, value string) tea.Cmd {
	copyFn := m.copyToClipboard
	return func() tea.Msg {
		if strings.TrimSpace(value) == "" {
			return copiedMsg{what: what, err: errNothingToCopy}
		}
		return copiedMsg{what: what, err: copyFn(value)}
	}
}

func (m mainModel) cmdSignOut() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return signedOutMsg{err: auth.SignOut(ctx)}
	}
}

func (m mainModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.build))
	}

	var body, hotKeys string
	switch m.tab {
	case tabClients:
		body, hotKeys = m.clientsView()
	case tabSuppliers:
		body, hotKeys = m.suppliersView()
	case tabProfile:
		body, hotKeys = m.profileView()
	default:
		body, hotKeys = m.dashboardView()
	}

	if !m.capturesKeys() {
		hotKeys += " │ tab: pestaña │ o: cerrar sesión │ q: salir"
	}

	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")
	b.WriteString(renderPage(strings.ToUpper(tabTitles[m.tab]), body, hotKeys))

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	if m.profile.confirmDelete {
		b.WriteString("\n\n")
		b.WriteString(confirmModel{message: "¿Eliminar la cuenta " + m.identity.Email + "? Esta acción no se puede deshacer."}.View())
	}
	if m.showError {
		b.WriteString("\n\n")
		b.WriteString(m.errorOverlay.View())
	}

	return appStyle.Render(b.String())
}

func (m mainModel) tabBar() string {
	parts := make([]string, 0, len(tabTitles)+1)
	for i, title := range tabTitles {
		if tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(title))
		} else {
			parts = append(parts, tabStyle.Render(title))
		}
	}

	bar := strings.Join(parts, "│")
	if m.loading() {
		bar += "  " + m.spinner.View()
	}
	return bar + "  " + helpStyle.Render(m.identity.Username)
}
