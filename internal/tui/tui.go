// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/workers"
	"github.com/MKhiriev/bizdesk/models"
)

// Mount builds the synchronizers feeding one main window. It is called once
// per [TUI.MainLoop], since synchronizers are single use.
type Mount func(sink *Sink) *workers.Workers

type TUI struct {
	services *service.ClientServices
	build    models.AppBuildInfo
	logger   *logger.Logger

	// options are appended to every program; tests use them to drop the
	// terminal.
	options []tea.ProgramOption
}

func New(services *service.ClientServices, build models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.AuthService == nil || services.DirectoryService == nil {
		return nil, errNoServices
	}

	return &TUI{
		services: services,
		build:    build,
		logger:   logger.WithComponent("tui"),
		options:  []tea.ProgramOption{tea.WithAltScreen()},
	}, nil
}

// LoginFlow runs the sign-in / sign-up screens until a session exists.
func (t *TUI) LoginFlow(ctx context.Context) (models.Identity, error) {
	model := newAuthModel(ctx, t.services.AuthService, t.build)

	finalModel, err := tea.NewProgram(model, t.programOptions(ctx)...).Run()
	if err != nil {
		return models.Identity{}, err
	}

	result, ok := finalModel.(authModel)
	if !ok {
		return models.Identity{}, tea.ErrProgramKilled
	}
	if result.quitByUser || result.identity == nil {
		return models.Identity{}, ErrUserQuit
	}

	t.logger.Info().Int64("user_id", result.identity.UserID).Msg("signed in")
	return *result.identity, nil
}

// MainLoop shows the main window for identity. The workers built by mount
// run exactly as long as the window: they are started before the first
// frame and stopped on every exit path. logout is true when the user signed
// out or deleted the account.
func (t *TUI) MainLoop(ctx context.Context, identity models.Identity, mount Mount) (logout bool, err error) {
	model := newMainModel(ctx, t.services, identity, t.build)
	program := tea.NewProgram(model, t.programOptions(ctx)...)

	group := mount(NewSink(program.Send))

	var finalModel tea.Model
	err = group.Run(ctx, func(context.Context) error {
		var runErr error
		finalModel, runErr = program.Run()
		return runErr
	})
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return false, nil
		}
		return false, err
	}

	result, ok := finalModel.(mainModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}

func (t *TUI) programOptions(ctx context.Context) []tea.ProgramOption {
	return append([]tea.ProgramOption{tea.WithContext(ctx)}, t.options...)
}
