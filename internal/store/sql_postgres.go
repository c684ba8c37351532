// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-subs-directory/internal/config"
	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/migrations"
)

const (
	maxOpenConns = 10
	maxIdleConns = 4
)

// psql builds every PostgreSQL statement with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB wraps the *sql.DB pool shared by the PostgreSQL repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens a pgx-backed pool and pings it until the server
// answers. Retryable failures (connection refused, server starting up) are
// retried with exponential backoff for at most cfg.ConnectTimeout; anything
// else fails immediately.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	if err = db.ping(ctx, cfg.ConnectTimeout); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return db, nil
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB)
}

func (db *DB) ping(ctx context.Context, timeout time.Duration) error {
	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = 250 * time.Millisecond
	strategy.MaxInterval = 5 * time.Second
	strategy.MaxElapsedTime = timeout

	// a zero timeout means a single attempt
	var policy backoff.BackOff = strategy
	if timeout <= 0 {
		policy = backoff.WithMaxRetries(strategy, 0)
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}

		if db.errorClassificator.Classify(err) == Retryable {
			db.logger.Warn().Err(err).
				Str("func", "*DB.ping").
				Int("attempt", attempt).
				Msg("database is not ready, will retry")
			return err
		}

		return backoff.Permanent(err)
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		db.logger.Err(err).Str("func", "*DB.ping").Int("attempts", attempt).Msg("error connecting database (ping)")
		return fmt.Errorf("%w: %w", ErrConnectingDatabase, err)
	}

	return nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
