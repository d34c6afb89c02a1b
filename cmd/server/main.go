// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/bizdesk/internal/broker"
	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/handler"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/metrics"
	"github.com/MKhiriev/bizdesk/internal/server"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/store"
	"github.com/MKhiriev/bizdesk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(build)

	log := logger.NewLogger("bizdesk-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	changes, err := broker.New(ctx, cfg.Broker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating broker")
	}
	defer func() {
		if err := changes.Close(); err != nil {
			log.Err(err).Msg("error closing broker")
		}
	}()

	m := metrics.New(true)

	services := service.NewServices(storages, changes, m, cfg.App, build, log)

	handlers, err := handler.NewHandlers(services, changes, m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
