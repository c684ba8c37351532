// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-subs-directory/models"
)

// UserService implements the directory operations on users.
type UserService interface {
	// Register creates a user with a fresh id and invite key.
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisteredUser, error)
	// Get returns ErrUserNotFound for an unknown id.
	Get(ctx context.Context, id string) (models.User, error)
	// GetByInviteKey returns the reduced projection of the key owner.
	GetByInviteKey(ctx context.Context, key string) (models.UserPreview, error)
	// List returns every user except excludeID; never nil.
	List(ctx context.Context, excludeID string) ([]models.User, error)
	// Update overwrites nickname and settings wholesale.
	Update(ctx context.Context, id string, req models.UpdateRequest) (models.UpdatedUser, error)
	// ResetInviteKey replaces the user's invite key with a fresh one.
	ResetInviteKey(ctx context.Context, id string) (models.InviteKeyResponse, error)
	// ListSubscribers returns users whose settings.online.subs lists inviteKey.
	ListSubscribers(ctx context.Context, inviteKey string) ([]models.UserPreview, error)
}

// SubscriptionService manages explicit subscription edges.
type SubscriptionService interface {
	Subscribe(ctx context.Context, req models.SubscribeRequest) error
	ListTargets(ctx context.Context, userID string) ([]models.User, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// StatsService reports directory totals for the metrics gauges.
type StatsService interface {
	Snapshot(ctx context.Context) (models.DirectoryStats, error)
}

// KeyGenerator hands out invite keys no user currently owns.
type KeyGenerator interface {
	Generate(ctx context.Context) (string, error)
}
