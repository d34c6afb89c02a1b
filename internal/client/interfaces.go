// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/bizdesk/internal/tui"
	"github.com/MKhiriev/bizdesk/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the part of [tui.TUI] the application drives.
type UI interface {
	LoginFlow(ctx context.Context) (models.Identity, error)
	MainLoop(ctx context.Context, identity models.Identity, mount tui.Mount) (logout bool, err error)
}
