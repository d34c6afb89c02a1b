// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/client"
	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/internal/tui"
	"github.com/MKhiriev/bizdesk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const role = "bizdesk-client"

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(build)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger(role, "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger(role, cfg.UI.LogFile)

	gateway, err := adapter.NewHTTPGateway(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create backend gateway")
	}

	localStorage, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer func() {
		if err := localStorage.Close(); err != nil {
			log.Err(err).Msg("error closing local storage")
		}
	}()

	services := service.NewClientServices(localStorage, gateway, log)

	ui, err := tui.New(services, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, gateway, ui, cfg.UI, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}
