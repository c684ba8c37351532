// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It works against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns the row as stored.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserIDTaken].
//   - Any other driver-level error → [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to create query")
		return models.User{}, queryError("insert user", err)
	}

	created, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("user_id", user.ID).Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserIDTaken
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return created, nil
}

// FindUserByID returns [ErrUserNotFound] when the id is unknown.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByIDQuery(id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("failed to create query")
		return models.User{}, queryError("find user by id", err)
	}

	user, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Str("user_id", id).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindUserByInviteKey returns [ErrUserNotFound] when no user owns key.
func (r *userRepository) FindUserByInviteKey(ctx context.Context, key string) (models.UserPreview, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByInviteKeyQuery(key)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByInviteKey").Msg("failed to create query")
		return models.UserPreview{}, queryError("find user by invite key", err)
	}

	preview, err := scanUserPreview(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserPreview{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByInviteKey").Msg("error finding user by invite key")
		return models.UserPreview{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return preview, nil
}

func (r *userRepository) InviteKeyExists(ctx context.Context, key string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInviteKeyExistsQuery(key)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.InviteKeyExists").Msg("failed to create query")
		return false, queryError("invite key exists", err)
	}

	var one int
	if err = r.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		log.Err(err).Str("func", "*userRepository.InviteKeyExists").Msg("error checking invite key")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

func (r *userRepository) ListUsers(ctx context.Context, excludeID string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(excludeID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to create query")
		return nil, queryError("list users", err)
	}

	return r.queryUsers(ctx, "*userRepository.ListUsers", query, args)
}

func (r *userRepository) ListUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	log := logger.FromContext(ctx)

	query, args, err := buildListUsersByIDsQuery(ids)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsersByIDs").Msg("failed to create query")
		return nil, queryError("list users by ids", err)
	}

	return r.queryUsers(ctx, "*userRepository.ListUsersByIDs", query, args)
}

// UpdateUser overwrites nickname and settings wholesale. Zero affected rows
// means the user does not exist, so nothing was written.
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("failed to create query")
		return queryError("update user", err)
	}

	return r.execSingleRow(ctx, "*userRepository.UpdateUser", update.ID, query, args)
}

func (r *userRepository) UpdateInviteKey(ctx context.Context, id, key string, at time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateInviteKeyQuery(id, key, at)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateInviteKey").Msg("failed to create query")
		return queryError("update invite key", err)
	}

	return r.execSingleRow(ctx, "*userRepository.UpdateInviteKey", id, query, args)
}

func (r *userRepository) ListSubscribers(ctx context.Context, inviteKey string) ([]models.UserPreview, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListSubscribersQuery(inviteKey)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListSubscribers").Msg("failed to create query")
		return nil, queryError("list subscribers", err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListSubscribers").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	subscribers := make([]models.UserPreview, 0)
	for rows.Next() {
		preview, scanErr := scanUserPreview(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListSubscribers").Msg("failed to scan subscriber row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		subscribers = append(subscribers, preview)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.ListSubscribers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return subscribers, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	return count(ctx, r.DB, usersTable)
}

func (r *userRepository) queryUsers(ctx context.Context, fn, query string, args []any) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

func (r *userRepository) execSingleRow(ctx context.Context, fn, id, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Str("user_id", id).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", fn).Str("user_id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func count(ctx context.Context, db *DB, table string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountQuery(table)
	if err != nil {
		log.Err(err).Str("func", "count").Str("table", table).Msg("failed to create query")
		return 0, queryError("count "+table, err)
	}

	var total int64
	if err = db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "count").Str("table", table).Msg("failed to count rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}
