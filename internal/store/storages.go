// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists directory users and subscription edges.
//
// Two backends implement the repository interfaces: PostgreSQL (pgx driver,
// squirrel-built queries, goose migrations) and an in-memory one selected
// with the "memory://" DSN for local runs and tests.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-subs-directory/internal/config"
	"github.com/MKhiriev/go-subs-directory/internal/logger"
)

// Storages aggregates the repositories handed to the service layer.
type Storages struct {
	UserRepository         UserRepository
	SubscriptionRepository SubscriptionRepository

	close func() error
}

// NewStorages opens the backend named by cfg.DB.DSN. For PostgreSQL it
// connects (with retries), applies migrations and builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	backend, err := backendFor(cfg.DB.DSN)
	if err != nil {
		log.Err(err).Str("func", "store.NewStorages").Msg("unsupported storage dsn")
		return nil, err
	}

	if backend == backendMemory {
		log.Info().Str("func", "store.NewStorages").Msg("using in-memory storage")
		return NewMemoryStorages(log), nil
	}

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "store.NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		SubscriptionRepository: NewSubscriptionRepository(db, log),
		close:                  db.Close,
	}, nil
}

// NewMemoryStorages builds empty in-memory repositories.
func NewMemoryStorages(log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewMemoryUserRepository(log),
		SubscriptionRepository: NewMemorySubscriptionRepository(log),
	}
}

// Close releases the database pool, if any.
func (s *Storages) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

type backend int

const (
	backendPostgres backend = iota
	backendMemory
)

// backendFor picks a backend from the DSN scheme. Keyword/value DSNs
// ("host=... dbname=...") have no scheme and go to PostgreSQL.
func backendFor(dsn string) (backend, error) {
	if dsn == config.MemoryDSN {
		return backendMemory, nil
	}

	scheme, _, found := strings.Cut(dsn, "://")
	if !found {
		return backendPostgres, nil
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return backendPostgres, nil
	case "memory":
		return backendMemory, nil
	default:
		return 0, fmt.Errorf("%w: scheme %q", ErrUnsupportedDSN, scheme)
	}
}
