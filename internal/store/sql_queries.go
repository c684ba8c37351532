// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-subs-directory/models"
)

const (
	usersTable         = "users"
	subscriptionsTable = "subscriptions"
)

var (
	userColumns = []string{
		"id",
		"nickname",
		"settings",
		"invite_key",
		"created_at",
		"last_update_at",
	}

	userPreviewColumns = []string{
		"id",
		"nickname",
		"last_update_at",
		"invite_key",
	}

	// users are listed oldest first; id breaks ties between equal timestamps
	usersOrder = []string{"created_at ASC", "id ASC"}
)

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(usersTable).
		Columns(userColumns...).
		Values(
			user.ID,
			user.Nickname,
			user.Settings,
			nullableString(user.InviteKey),
			user.CreatedAt,
			user.LastUpdateAt,
		).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
}

func buildFindUserByIDQuery(id string) (string, []any, error) {
	return psql.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// Keys are not constrained to be unique, so the oldest owner wins.
func buildFindUserByInviteKeyQuery(key string) (string, []any, error) {
	return psql.Select(userPreviewColumns...).
		From(usersTable).
		Where(sq.Eq{"invite_key": key}).
		OrderBy(usersOrder...).
		Limit(1).
		ToSql()
}

func buildInviteKeyExistsQuery(key string) (string, []any, error) {
	return psql.Select("1").
		From(usersTable).
		Where(sq.Eq{"invite_key": key}).
		Limit(1).
		ToSql()
}

func buildListUsersQuery(excludeID string) (string, []any, error) {
	query := psql.Select(userColumns...).
		From(usersTable).
		OrderBy(usersOrder...)

	if excludeID != "" {
		query = query.Where(sq.NotEq{"id": excludeID})
	}

	return query.ToSql()
}

func buildListUsersByIDsQuery(ids []string) (string, []any, error) {
	return psql.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": ids}).
		OrderBy(usersOrder...).
		ToSql()
}

func buildUpdateUserQuery(update models.UserUpdate) (string, []any, error) {
	return psql.Update(usersTable).
		Set("nickname", update.Nickname).
		Set("settings", update.Settings).
		Set("last_update_at", update.LastUpdateAt).
		Where(sq.Eq{"id": update.ID}).
		ToSql()
}

func buildUpdateInviteKeyQuery(id, key string, at time.Time) (string, []any, error) {
	return psql.Update(usersTable).
		Set("invite_key", key).
		Set("last_update_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildListSubscribersQuery selects users whose settings.online.subs array
// contains key. JSONB containment lets the GIN index on settings serve it.
func buildListSubscribersQuery(key string) (string, []any, error) {
	doc, err := json.Marshal(map[string]any{
		"online": map[string]any{"subs": []string{key}},
	})
	if err != nil {
		return "", nil, err
	}

	return psql.Select(userPreviewColumns...).
		From(usersTable).
		Where(sq.Expr("settings @> ?::jsonb", string(doc))).
		OrderBy(usersOrder...).
		ToSql()
}

// ── subscriptions ─────────────────────────────────────────────────────────────

func buildSubscriptionExistsQuery(from, to string) (string, []any, error) {
	return psql.Select("1").
		From(subscriptionsTable).
		Where(sq.Eq{"from_user_id": from, "to_user_id": to}).
		Limit(1).
		ToSql()
}

func buildInsertSubscriptionQuery(subscription models.Subscription) (string, []any, error) {
	return psql.Insert(subscriptionsTable).
		Columns("from_user_id", "to_user_id", "created_at").
		Values(subscription.From, subscription.To, subscription.CreatedAt).
		ToSql()
}

func buildListSubscriptionTargetsQuery(from string) (string, []any, error) {
	return psql.Select("to_user_id").
		From(subscriptionsTable).
		Where(sq.Eq{"from_user_id": from}).
		OrderBy("created_at ASC", "to_user_id ASC").
		ToSql()
}

// ── shared ────────────────────────────────────────────────────────────────────

func buildCountQuery(table string) (string, []any, error) {
	return psql.Select("COUNT(*)").From(table).ToSql()
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		inviteKey sql.NullString
	)

	if err := row.Scan(
		&user.ID,
		&user.Nickname,
		&user.Settings,
		&inviteKey,
		&user.CreatedAt,
		&user.LastUpdateAt,
	); err != nil {
		return models.User{}, err
	}

	user.InviteKey = inviteKey.String
	return user, nil
}

func scanUserPreview(row rowScanner) (models.UserPreview, error) {
	var (
		preview   models.UserPreview
		inviteKey sql.NullString
	)

	if err := row.Scan(
		&preview.ID,
		&preview.Nickname,
		&preview.LastUpdateAt,
		&inviteKey,
	); err != nil {
		return models.UserPreview{}, err
	}

	preview.InviteKey = inviteKey.String
	return preview, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func queryError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBuildingSQLQuery, op, err)
}
