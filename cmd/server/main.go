// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-subs-directory/internal/config"
	"github.com/MKhiriev/go-subs-directory/internal/handler"
	"github.com/MKhiriev/go-subs-directory/internal/invitekey"
	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/server"
	"github.com/MKhiriev/go-subs-directory/internal/service"
	"github.com/MKhiriev/go-subs-directory/internal/store"
	"github.com/MKhiriev/go-subs-directory/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("subs-directory-server")
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return err
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Int("invite_key_length", cfg.App.InviteKey.Length).
		Int("invite_key_max_attempts", cfg.App.InviteKey.MaxAttempts).
		Dur("stats_interval", cfg.Workers.StatsInterval).
		Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if cerr := storages.Close(); cerr != nil {
			log.Err(cerr).Msg("error closing storages")
		}
	}()

	keys := invitekey.NewGenerator(storages.UserRepository, cfg.App.InviteKey, log)

	services, err := service.NewServices(storages, keys, buildVersion, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	bg := workers.NewWorkers(services, cfg.Workers, log)
	bg.Run(ctx)

	err = srv.RunServer(ctx)

	cancel()
	bg.Wait()

	return err
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
