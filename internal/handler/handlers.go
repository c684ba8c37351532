// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler builds the transport handlers served by the directory
// server.
package handler

import (
	"github.com/MKhiriev/go-subs-directory/internal/config"
	"github.com/MKhiriev/go-subs-directory/internal/handler/http"
	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, cfg, logger)}, nil
}
