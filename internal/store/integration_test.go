// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MKhiriev/go-subs-directory/internal/config"
	"github.com/MKhiriev/go-subs-directory/internal/logger"
)

// startPostgres runs a throwaway PostgreSQL container and returns its DSN.
// The test is skipped in -short mode or when Docker is unavailable.
func startPostgres(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var (
		pgContainer *postgres.PostgresContainer
		err         error
	)

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("directory"),
			postgres.WithUsername("directory"),
			postgres.WithPassword("directory"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil {
		t.Skipf("Skipping integration test, postgres container did not start: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return dsn
}

func TestPostgresRepositories_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()
	log := logger.Nop()

	storages, err := NewStorages(ctx, config.Storage{DB: config.DB{DSN: dsn, ConnectTimeout: 10 * time.Second}}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	db, err := NewConnectPostgres(ctx, config.DB{DSN: dsn, ConnectTimeout: 10 * time.Second}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runRepositoryContract(t, func(t *testing.T) (UserRepository, SubscriptionRepository) {
		_, err := db.ExecContext(ctx, "TRUNCATE users, subscriptions")
		require.NoError(t, err)
		return storages.UserRepository, storages.SubscriptionRepository
	})
}

func TestPostgresMigrate_Idempotent(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	db, err := NewConnectPostgres(ctx, config.DB{DSN: dsn, ConnectTimeout: 10 * time.Second}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx))
}
