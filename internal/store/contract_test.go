// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-subs-directory/models"
)

// repositoryFactory returns empty repositories for one subtest.
type repositoryFactory func(t *testing.T) (UserRepository, SubscriptionRepository)

var contractEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func contractUser(n int, inviteKey string, settings models.Settings) models.User {
	at := contractEpoch.Add(time.Duration(n) * time.Minute)
	return models.User{
		ID:           fmt.Sprintf("user-%02d", n),
		Nickname:     fmt.Sprintf("nick-%02d", n),
		Settings:     settings,
		InviteKey:    inviteKey,
		CreatedAt:    at,
		LastUpdateAt: at,
	}
}

func subscribedTo(keys ...string) models.Settings {
	subs := make([]any, 0, len(keys))
	for _, k := range keys {
		subs = append(subs, k)
	}
	return models.Settings{"online": map[string]any{"subs": subs}}
}

func mustCreate(t *testing.T, repo UserRepository, users ...models.User) {
	t.Helper()
	for _, u := range users {
		_, err := repo.CreateUser(context.Background(), u)
		require.NoError(t, err)
	}
}

func userIDs(users []models.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func previewIDs(previews []models.UserPreview) []string {
	ids := make([]string, 0, len(previews))
	for _, p := range previews {
		ids = append(ids, p.ID)
	}
	return ids
}

// runRepositoryContract checks the behaviour every backend must share.
func runRepositoryContract(t *testing.T, newRepos repositoryFactory) {
	ctx := context.Background()

	t.Run("create then find by id", func(t *testing.T) {
		users, _ := newRepos(t)
		u := contractUser(1, "KeyOne000001", models.Settings{"theme": "dark"})

		created, err := users.CreateUser(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, u.ID, created.ID)

		found, err := users.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Nickname, found.Nickname)
		assert.Equal(t, u.InviteKey, found.InviteKey)
		assert.Equal(t, u.Settings, found.Settings)
		assert.True(t, u.CreatedAt.Equal(found.CreatedAt))
		assert.True(t, u.LastUpdateAt.Equal(found.LastUpdateAt))
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		users, _ := newRepos(t)
		u := contractUser(1, "", models.Settings{})
		mustCreate(t, users, u)

		_, err := users.CreateUser(ctx, u)
		assert.ErrorIs(t, err, ErrUserIDTaken)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		users, _ := newRepos(t)

		_, err := users.FindUserByID(ctx, "no-such-user")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("find by invite key returns the preview", func(t *testing.T) {
		users, _ := newRepos(t)
		u := contractUser(1, "KeyOne000001", models.Settings{"theme": "dark"})
		mustCreate(t, users, u, contractUser(2, "KeyTwo000002", models.Settings{}))

		preview, err := users.FindUserByInviteKey(ctx, "KeyOne000001")
		require.NoError(t, err)
		assert.Equal(t, u.ID, preview.ID)
		assert.Equal(t, u.Nickname, preview.Nickname)
		assert.Equal(t, u.InviteKey, preview.InviteKey)
		assert.True(t, u.LastUpdateAt.Equal(preview.LastUpdateAt))

		_, err = users.FindUserByInviteKey(ctx, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("invite key existence", func(t *testing.T) {
		users, _ := newRepos(t)
		mustCreate(t, users, contractUser(1, "KeyOne000001", models.Settings{}), contractUser(2, "", models.Settings{}))

		exists, err := users.InviteKeyExists(ctx, "KeyOne000001")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = users.InviteKeyExists(ctx, "keyone000001")
		require.NoError(t, err)
		assert.False(t, exists, "keys are case sensitive")

		exists, err = users.InviteKeyExists(ctx, "")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list users applies the exclusion filter", func(t *testing.T) {
		users, _ := newRepos(t)
		mustCreate(t, users,
			contractUser(3, "", models.Settings{}),
			contractUser(1, "", models.Settings{}),
			contractUser(2, "", models.Settings{}),
		)

		all, err := users.ListUsers(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"user-01", "user-02", "user-03"}, userIDs(all))

		filtered, err := users.ListUsers(ctx, "user-02")
		require.NoError(t, err)
		assert.Equal(t, []string{"user-01", "user-03"}, userIDs(filtered))

		unknown, err := users.ListUsers(ctx, "nobody")
		require.NoError(t, err)
		assert.Len(t, unknown, 3)
	})

	t.Run("list users on empty store is an empty slice", func(t *testing.T) {
		users, _ := newRepos(t)

		all, err := users.ListUsers(ctx, "")
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("list users by ids", func(t *testing.T) {
		users, _ := newRepos(t)
		mustCreate(t, users,
			contractUser(1, "", models.Settings{}),
			contractUser(2, "", models.Settings{}),
			contractUser(3, "", models.Settings{}),
		)

		found, err := users.ListUsersByIDs(ctx, []string{"user-03", "user-01", "ghost"})
		require.NoError(t, err)
		assert.Equal(t, []string{"user-01", "user-03"}, userIDs(found))

		none, err := users.ListUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("update overwrites nickname and settings", func(t *testing.T) {
		users, _ := newRepos(t)
		u := contractUser(1, "KeyOne000001", models.Settings{"theme": "dark", "lang": "en"})
		mustCreate(t, users, u)

		later := u.LastUpdateAt.Add(time.Hour)
		err := users.UpdateUser(ctx, models.UserUpdate{
			ID:           u.ID,
			Nickname:     "renamed",
			Settings:     models.Settings{"lang": "fr"},
			LastUpdateAt: later,
		})
		require.NoError(t, err)

		found, err := users.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", found.Nickname)
		assert.Equal(t, models.Settings{"lang": "fr"}, found.Settings)
		assert.Equal(t, u.InviteKey, found.InviteKey)
		assert.True(t, later.Equal(found.LastUpdateAt))
		assert.True(t, u.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("update of unknown user writes nothing", func(t *testing.T) {
		users, _ := newRepos(t)
		mustCreate(t, users, contractUser(1, "", models.Settings{}))

		err := users.UpdateUser(ctx, models.UserUpdate{ID: "ghost", Nickname: "x", Settings: models.Settings{}})
		assert.ErrorIs(t, err, ErrUserNotFound)

		total, err := users.CountUsers(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		_, err = users.FindUserByID(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("update invite key", func(t *testing.T) {
		users, _ := newRepos(t)
		u := contractUser(1, "KeyOne000001", models.Settings{})
		mustCreate(t, users, u)

		later := u.LastUpdateAt.Add(time.Minute)
		require.NoError(t, users.UpdateInviteKey(ctx, u.ID, "KeyNew000009", later))

		found, err := users.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "KeyNew000009", found.InviteKey)
		assert.True(t, later.Equal(found.LastUpdateAt))

		exists, err := users.InviteKeyExists(ctx, "KeyOne000001")
		require.NoError(t, err)
		assert.False(t, exists)

		assert.ErrorIs(t, users.UpdateInviteKey(ctx, "ghost", "k", later), ErrUserNotFound)
	})

	t.Run("list subscribers by settings containment", func(t *testing.T) {
		users, _ := newRepos(t)
		owner := contractUser(1, "OwnerKey0001", models.Settings{})
		fan := contractUser(2, "FanKey000002", subscribedTo("OwnerKey0001", "Other0000003"))
		other := contractUser(3, "Other0000003", subscribedTo("Other0000003"))
		plain := contractUser(4, "", models.Settings{"online": map[string]any{"status": "away"}})
		mustCreate(t, users, owner, fan, other, plain)

		subscribers, err := users.ListSubscribers(ctx, "OwnerKey0001")
		require.NoError(t, err)
		assert.Equal(t, []string{"user-02"}, previewIDs(subscribers))
		assert.Equal(t, "FanKey000002", subscribers[0].InviteKey)

		subscribers, err = users.ListSubscribers(ctx, "Other0000003")
		require.NoError(t, err)
		assert.Equal(t, []string{"user-02", "user-03"}, previewIDs(subscribers))

		subscribers, err = users.ListSubscribers(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, subscribers)
		assert.Empty(t, subscribers)
	})

	t.Run("list subscribers with typed nested settings", func(t *testing.T) {
		users, _ := newRepos(t)
		owner := contractUser(1, "OwnerKey0001", models.Settings{})
		fan := contractUser(2, "", models.Settings{"online": models.Settings{"subs": []string{"OwnerKey0001"}}})
		mustCreate(t, users, owner, fan)

		subscribers, err := users.ListSubscribers(ctx, "OwnerKey0001")
		require.NoError(t, err)
		assert.Equal(t, []string{"user-02"}, previewIDs(subscribers))

		found, err := users.FindUserByID(ctx, fan.ID)
		require.NoError(t, err)
		assert.True(t, found.Settings.SubscribesTo("OwnerKey0001"))
	})

	t.Run("subscriptions are unique per pair", func(t *testing.T) {
		_, subs := newRepos(t)
		edge := models.Subscription{From: "user-01", To: "user-02", CreatedAt: contractEpoch}

		exists, err := subs.SubscriptionExists(ctx, edge.From, edge.To)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, subs.CreateSubscription(ctx, edge))
		assert.ErrorIs(t, subs.CreateSubscription(ctx, edge), ErrSubscriptionAlreadyExists)

		exists, err = subs.SubscriptionExists(ctx, edge.From, edge.To)
		require.NoError(t, err)
		assert.True(t, exists)

		reverse, err := subs.SubscriptionExists(ctx, edge.To, edge.From)
		require.NoError(t, err)
		assert.False(t, reverse)

		total, err := subs.CountSubscriptions(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("subscription targets", func(t *testing.T) {
		_, subs := newRepos(t)
		require.NoError(t, subs.CreateSubscription(ctx, models.Subscription{From: "a", To: "b", CreatedAt: contractEpoch}))
		require.NoError(t, subs.CreateSubscription(ctx, models.Subscription{From: "a", To: "c", CreatedAt: contractEpoch.Add(time.Second)}))
		require.NoError(t, subs.CreateSubscription(ctx, models.Subscription{From: "b", To: "a", CreatedAt: contractEpoch}))

		targets, err := subs.ListSubscriptionTargets(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, targets)

		none, err := subs.ListSubscriptionTargets(ctx, "z")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("count users", func(t *testing.T) {
		users, _ := newRepos(t)
		mustCreate(t, users, contractUser(1, "", models.Settings{}), contractUser(2, "", models.Settings{}))

		total, err := users.CountUsers(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})
}
