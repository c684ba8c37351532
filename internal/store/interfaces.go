// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-subs-directory/models"
)

// UserRepository persists directory users.
type UserRepository interface {
	// CreateUser stores user as given. The caller assigns ID and timestamps.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByID returns ErrUserNotFound when no user has id.
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// FindUserByInviteKey returns ErrUserNotFound when no user owns key.
	FindUserByInviteKey(ctx context.Context, key string) (models.UserPreview, error)
	InviteKeyExists(ctx context.Context, key string) (bool, error)
	// ListUsers returns all users except excludeID. The result is never nil.
	ListUsers(ctx context.Context, excludeID string) ([]models.User, error)
	// UpdateUser overwrites nickname, settings and last update time.
	// It returns ErrUserNotFound without writing when the user is missing.
	UpdateUser(ctx context.Context, update models.UserUpdate) error
	UpdateInviteKey(ctx context.Context, id, key string, at time.Time) error
	// ListSubscribers returns users whose settings.online.subs contains inviteKey.
	ListSubscribers(ctx context.Context, inviteKey string) ([]models.UserPreview, error)
	ListUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// SubscriptionRepository persists explicit subscription edges.
type SubscriptionRepository interface {
	SubscriptionExists(ctx context.Context, from, to string) (bool, error)
	// CreateSubscription returns ErrSubscriptionAlreadyExists for a duplicate pair.
	CreateSubscription(ctx context.Context, subscription models.Subscription) error
	// ListSubscriptionTargets returns the "to" ids of every edge starting at from.
	ListSubscriptionTargets(ctx context.Context, from string) ([]string, error)
	CountSubscriptions(ctx context.Context) (int64, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
