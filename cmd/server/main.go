// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/handler"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/server"
	"github.com/MKhiriev/go-mini-crm/internal/service"
	"github.com/MKhiriev/go-mini-crm/internal/session"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("crm-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	sessions, err := session.NewStore(cfg.Storage.Sessions, cfg.App.TokenDuration, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating session store")
	}
	defer sessions.Close()

	services, err := service.NewServices(storages, sessions, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	created, err := services.UserService.EnsureAdministrator(ctx, cfg.App.BootstrapAdminUsername, cfg.App.BootstrapAdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating bootstrap administrator")
	}
	if created {
		log.Warn().Str("username", cfg.App.BootstrapAdminUsername).Msg("bootstrap administrator created, change its password")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
