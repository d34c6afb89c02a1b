// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/listsync"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/tui"
	"github.com/MKhiriev/bizdesk/internal/workers"
	"github.com/MKhiriev/bizdesk/models"
)

var errNoUI = errors.New("no ui is configured")

type App struct {
	services    *service.ClientServices
	gateway     adapter.RowGateway
	ui          UI
	previewSize int
	logger      *logger.Logger
}

func NewApp(services *service.ClientServices, gateway adapter.RowGateway, ui UI, cfg config.ClientUI, logger *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errNoUI
	}

	return &App{
		services:    services,
		gateway:     gateway,
		ui:          ui,
		previewSize: cfg.PreviewSize,
		logger:      logger,
	}, nil
}

// Run blocks until the user quits or the process is interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

// run alternates between the login flow and the main window until the user
// quits without signing out.
func (a *App) run(ctx context.Context) error {
	for {
		identity, err := a.session(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}

		logout, err := a.ui.MainLoop(ctx, identity, a.mount)
		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}
		if !logout {
			return nil
		}

		a.logger.Info().Int64("user_id", identity.UserID).Msg("signed out")
	}
}

// session resumes the stored session when the backend still accepts it and
// falls back to the login screens otherwise.
func (a *App) session(ctx context.Context) (models.Identity, error) {
	restored, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("could not restore session")
	}
	if restored != nil {
		a.logger.Info().Int64("user_id", restored.UserID).Msg("session restored")
		return *restored, nil
	}

	return a.ui.LoginFlow(ctx)
}

// mount builds one synchronizer per widget of the main window. The counters
// only listen for inserts and deletes; previews keep the first rows.
func (a *App) mount(sink *tui.Sink) *workers.Workers {
	counter := listsync.WithEventKinds(models.EventInserted, models.EventDeleted)
	preview := listsync.WithLimit(a.previewSize)

	return workers.New(
		workers.NewSyncWorker(listsync.NewRecords(a.gateway, a.logger, counter), models.TableClients, sink.ClientCount),
		workers.NewSyncWorker(listsync.NewRecords(a.gateway, a.logger, counter), models.TableSuppliers, sink.SupplierCount),
		workers.NewSyncWorker(listsync.New(a.gateway, models.DecodeRecord[models.Client], a.logger, preview), models.TableClients, sink.ClientPreview),
		workers.NewSyncWorker(listsync.New(a.gateway, models.DecodeRecord[models.Supplier], a.logger, preview), models.TableSuppliers, sink.SupplierPreview),
		workers.NewSyncWorker(listsync.New(a.gateway, models.DecodeRecord[models.Client], a.logger), models.TableClients, sink.Clients),
		workers.NewSyncWorker(listsync.New(a.gateway, models.DecodeRecord[models.Supplier], a.logger), models.TableSuppliers, sink.Suppliers),
	)
}
