// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/models"
)

// subscriptionRepository is the PostgreSQL-backed implementation of
// [SubscriptionRepository] over the "subscriptions" table.
type subscriptionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *DB, logger *logger.Logger) SubscriptionRepository {
	logger.Debug().Msg("creating subscription repository")
	return &subscriptionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *subscriptionRepository) SubscriptionExists(ctx context.Context, from, to string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSubscriptionExistsQuery(from, to)
	if err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.SubscriptionExists").Msg("failed to create query")
		return false, queryError("subscription exists", err)
	}

	var one int
	if err = r.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		log.Err(err).
			Str("func", "*subscriptionRepository.SubscriptionExists").
			Str("from", from).
			Str("to", to).
			Msg("error checking subscription")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// CreateSubscription inserts the edge. A unique_violation on (from, to)
// surfaces as [ErrSubscriptionAlreadyExists], covering the race between the
// service's existence check and this insert.
func (r *subscriptionRepository) CreateSubscription(ctx context.Context, subscription models.Subscription) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSubscriptionQuery(subscription)
	if err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.CreateSubscription").Msg("failed to create query")
		return queryError("insert subscription", err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrSubscriptionAlreadyExists
		}
		log.Err(err).
			Str("func", "*subscriptionRepository.CreateSubscription").
			Str("from", subscription.From).
			Str("to", subscription.To).
			Msg("failed to insert subscription")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *subscriptionRepository) ListSubscriptionTargets(ctx context.Context, from string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListSubscriptionTargetsQuery(from)
	if err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.ListSubscriptionTargets").Msg("failed to create query")
		return nil, queryError("list subscription targets", err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.ListSubscriptionTargets").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	targets := make([]string, 0)
	for rows.Next() {
		var to string
		if scanErr := rows.Scan(&to); scanErr != nil {
			log.Err(scanErr).Str("func", "*subscriptionRepository.ListSubscriptionTargets").Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		targets = append(targets, to)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*subscriptionRepository.ListSubscriptionTargets").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return targets, nil
}

func (r *subscriptionRepository) CountSubscriptions(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, subscriptionsTable)
}
