// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/store"
	"github.com/MKhiriev/go-subs-directory/internal/utils"
	"github.com/MKhiriev/go-subs-directory/models"
)

type userService struct {
	users store.UserRepository
	keys  KeyGenerator
	ids   utils.IDGenerator
	now   Clock

	logger *logger.Logger
}

func NewUserService(users store.UserRepository, keys KeyGenerator, ids utils.IDGenerator, now Clock, logger *logger.Logger) UserService {
	if now == nil {
		now = SystemClock
	}

	return &userService{
		users:  users,
		keys:   keys,
		ids:    ids,
		now:    now,
		logger: logger,
	}
}

// Register stores a new user. The invite key is allocated before the write,
// so a generator failure leaves no partial user behind.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (models.RegisteredUser, error) {
	log := logger.FromContext(ctx)

	key, err := s.keys.Generate(ctx)
	if err != nil {
		log.Err(err).Str("func", "*userService.Register").Msg("error generating invite key")
		return models.RegisteredUser{}, fmt.Errorf("error generating invite key: %w", err)
	}

	now := s.now()
	user := models.User{
		ID:           s.ids.Generate(),
		Nickname:     req.Nickname,
		Settings:     settingsOrEmpty(req.Settings),
		InviteKey:    key,
		CreatedAt:    now,
		LastUpdateAt: now,
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*userService.Register").Msg("error creating user")
		return models.RegisteredUser{}, fmt.Errorf("error creating user: %w", err)
	}

	log.Info().Str("func", "*userService.Register").Str("user_id", created.ID).Msg("user registered")

	return models.RegisteredUser{
		ID:        created.ID,
		Nickname:  created.Nickname,
		Settings:  created.Settings,
		InviteKey: created.InviteKey,
	}, nil
}

func (s *userService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.FindUserByID(ctx, id)
}

func (s *userService) GetByInviteKey(ctx context.Context, key string) (models.UserPreview, error) {
	return s.users.FindUserByInviteKey(ctx, key)
}

func (s *userService) List(ctx context.Context, excludeID string) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx, excludeID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Update replaces nickname and settings. An unknown id returns
// ErrUserNotFound and nothing is written. The response echoes the submitted
// fields only.
func (s *userService) Update(ctx context.Context, id string, req models.UpdateRequest) (models.UpdatedUser, error) {
	log := logger.FromContext(ctx)

	current, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return models.UpdatedUser{}, err
	}

	settings := settingsOrEmpty(req.Settings)
	update := models.UserUpdate{
		ID:           id,
		Nickname:     req.Nickname,
		Settings:     settings,
		LastUpdateAt: after(current.LastUpdateAt, s.now()),
	}

	if err = s.users.UpdateUser(ctx, update); err != nil {
		log.Err(err).Str("func", "*userService.Update").Str("user_id", id).Msg("error updating user")
		return models.UpdatedUser{}, fmt.Errorf("error updating user: %w", err)
	}

	return models.UpdatedUser{
		ID:       id,
		Nickname: req.Nickname,
		Settings: settings,
	}, nil
}

// ResetInviteKey checks the user exists before spending generator attempts.
func (s *userService) ResetInviteKey(ctx context.Context, id string) (models.InviteKeyResponse, error) {
	log := logger.FromContext(ctx)

	current, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return models.InviteKeyResponse{}, err
	}

	key, err := s.keys.Generate(ctx)
	if err != nil {
		log.Err(err).Str("func", "*userService.ResetInviteKey").Str("user_id", id).Msg("error generating invite key")
		return models.InviteKeyResponse{}, fmt.Errorf("error generating invite key: %w", err)
	}

	if err = s.users.UpdateInviteKey(ctx, id, key, after(current.LastUpdateAt, s.now())); err != nil {
		log.Err(err).Str("func", "*userService.ResetInviteKey").Str("user_id", id).Msg("error saving invite key")
		return models.InviteKeyResponse{}, fmt.Errorf("error saving invite key: %w", err)
	}

	return models.InviteKeyResponse{ID: id, InviteKey: key}, nil
}

// ListSubscribers answers ErrUserNotFound when no user owns inviteKey, even
// if some settings documents still list it.
func (s *userService) ListSubscribers(ctx context.Context, inviteKey string) ([]models.UserPreview, error) {
	if _, err := s.users.FindUserByInviteKey(ctx, inviteKey); err != nil {
		return nil, err
	}

	subscribers, err := s.users.ListSubscribers(ctx, inviteKey)
	if err != nil {
		return nil, err
	}
	if subscribers == nil {
		subscribers = []models.UserPreview{}
	}
	return subscribers, nil
}

func settingsOrEmpty(settings models.Settings) models.Settings {
	if settings == nil {
		return models.Settings{}
	}
	return settings
}
