// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/models"
)

// dashboardTab holds the Resumen data. Counts are -1 until their first
// snapshot arrives.
type dashboardTab struct {
	clientCount           int
	supplierCount         int
	clientPreview         []models.Client
	supplierPreview       []models.Supplier
	clientPreviewLoaded   bool
	supplierPreviewLoaded bool
}

func newDashboardTab() dashboardTab {
	return dashboardTab{clientCount: -1, supplierCount: -1}
}

func (d dashboardTab) loading() bool {
	return d.clientCount < 0 || d.supplierCount < 0 || !d.clientPreviewLoaded || !d.supplierPreviewLoaded
}

func countText(n int) string {
	if n < 0 {
		return "..."
	}
	return strconv.Itoa(n)
}

func (m mainModel) dashboardView() (string, string) {
	d := m.dashboard

	counters := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Total de clientes\n\n"+titleStyle.Render(countText(d.clientCount))),
		" ",
		cardStyle.Render("Total de proveedores\n\n"+titleStyle.Render(countText(d.supplierCount))),
	)

	var clients strings.Builder
	clients.WriteString(titleStyle.Render("Clientes recientes"))
	clients.WriteString("\n\n")
	switch {
	case !d.clientPreviewLoaded:
		clients.WriteString("Cargando...")
	case len(d.clientPreview) == 0:
		clients.WriteString("Sin clientes")
	default:
		for _, c := range d.clientPreview {
			fmt.Fprintf(&clients, "[%s] %s\n", service.Initial(c.Name), fitText(c.Name, 26))
		}
	}

	var suppliers strings.Builder
	suppliers.WriteString(titleStyle.Render("Proveedores recientes"))
	suppliers.WriteString("\n\n")
	switch {
	case !d.supplierPreviewLoaded:
		suppliers.WriteString("Cargando...")
	case len(d.supplierPreview) == 0:
		suppliers.WriteString("Sin proveedores")
	default:
		for _, s := range d.supplierPreview {
			fmt.Fprintf(&suppliers, "[%s] %s\n", service.Initial(s.Name), fitText(s.Name, 26))
		}
	}

	previews := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(strings.TrimRight(clients.String(), "\n")),
		" ",
		cardStyle.Render(strings.TrimRight(suppliers.String(), "\n")),
	)

	return counters + "\n\n" + previews, "v: versión"
}
