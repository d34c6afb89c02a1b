// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bizdesk/models"
)

// snapshots pushed by the synchronizers
type (
	clientsMsg         []models.Client
	suppliersMsg       []models.Supplier
	clientPreviewMsg   []models.Client
	supplierPreviewMsg []models.Supplier
	clientCountMsg     int
	supplierCountMsg   int
)

type authDoneMsg struct {
	identity models.Identity
	err      error
}

// savedMsg reports a create or update sent through the directory service.
type savedMsg struct {
	status string
	err    error
}

type profileSavedMsg struct {
	identity models.Identity
	err      error
}

type accountDeletedMsg struct {
	err error
}

type signedOutMsg struct {
	err error
}

type copiedMsg struct {
	what string
	err  error
}

type clearStatusMsg struct{}

const statusTimeout = 3 * time.Second

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
