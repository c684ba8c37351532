// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/models"
)

// memoryUserRepository is an in-process [UserRepository]. It mirrors the
// PostgreSQL repository: same ordering, same sentinel errors, settings
// copied on the way in and out so callers never share maps with the store.
type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]models.User
	logger *logger.Logger
}

func NewMemoryUserRepository(logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	return &memoryUserRepository{
		users:  make(map[string]models.User),
		logger: logger,
	}
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return models.User{}, ErrUserIDTaken
	}

	user.Settings = cloneSettings(user.Settings)
	r.users[user.ID] = user

	return copyUser(user), nil
}

func (r *memoryUserRepository) FindUserByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	return copyUser(user), nil
}

func (r *memoryUserRepository) FindUserByInviteKey(_ context.Context, key string) (models.UserPreview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.sorted() {
		if key != "" && user.InviteKey == key {
			return user.Preview(), nil
		}
	}

	return models.UserPreview{}, ErrUserNotFound
}

func (r *memoryUserRepository) InviteKeyExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.InviteKey == key {
			return true, nil
		}
	}

	return false, nil
}

func (r *memoryUserRepository) ListUsers(_ context.Context, excludeID string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, user := range r.sorted() {
		if excludeID != "" && user.ID == excludeID {
			continue
		}
		users = append(users, copyUser(user))
	}

	return users, nil
}

func (r *memoryUserRepository) ListUsersByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(ids))
	for _, user := range r.sorted() {
		if slices.Contains(ids, user.ID) {
			users = append(users, copyUser(user))
		}
	}

	return users, nil
}

func (r *memoryUserRepository) UpdateUser(_ context.Context, update models.UserUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[update.ID]
	if !ok {
		return ErrUserNotFound
	}

	user.Nickname = update.Nickname
	user.Settings = cloneSettings(update.Settings)
	user.LastUpdateAt = update.LastUpdateAt
	r.users[update.ID] = user

	return nil
}

func (r *memoryUserRepository) UpdateInviteKey(_ context.Context, id, key string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	user.InviteKey = key
	user.LastUpdateAt = at
	r.users[id] = user

	return nil
}

func (r *memoryUserRepository) ListSubscribers(_ context.Context, inviteKey string) ([]models.UserPreview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscribers := make([]models.UserPreview, 0)
	for _, user := range r.sorted() {
		if user.Settings.SubscribesTo(inviteKey) {
			subscribers = append(subscribers, user.Preview())
		}
	}

	return subscribers, nil
}

func (r *memoryUserRepository) CountUsers(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.users)), nil
}

// sorted returns users oldest first, ties broken by id. Callers hold mu.
func (r *memoryUserRepository) sorted() []models.User {
	users := slices.Collect(maps.Values(r.users))
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users
}

func copyUser(user models.User) models.User {
	user.Settings = cloneSettings(user.Settings)
	return user
}

// cloneSettings deep-copies nested objects and arrays so the stored
// document cannot be mutated through a returned value.
func cloneSettings(settings models.Settings) models.Settings {
	if settings == nil {
		return models.Settings{}
	}

	cloned := make(models.Settings, len(settings))
	for k, v := range settings {
		cloned[k] = cloneValue(v)
	}
	return cloned
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		cloned := make(map[string]any, len(value))
		for k, nested := range value {
			cloned[k] = cloneValue(nested)
		}
		return cloned
	case models.Settings:
		return map[string]any(cloneSettings(value))
	case []any:
		cloned := make([]any, len(value))
		for i, nested := range value {
			cloned[i] = cloneValue(nested)
		}
		return cloned
	case []string:
		return slices.Clone(value)
	default:
		return value
	}
}
