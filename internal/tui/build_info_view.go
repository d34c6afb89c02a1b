// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/bizdesk/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Aplicación", "bizdesk"},
		{"Versión", info.BuildVersion()},
		{"Fecha", info.BuildDate()},
		{"Commit", info.BuildCommit()},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %s", padRight(r[0]+":", 12), valueOrDash(r[1])))
	}

	return renderPage("ACERCA DEL PROGRAMA", strings.Join(lines, "\n"), "esc: volver")
}
