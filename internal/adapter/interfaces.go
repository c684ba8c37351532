// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a Go client for the directory REST API.
//
// [DirectoryClient] mirrors the server routes one method per endpoint.
// Non-2xx responses are mapped to the sentinel errors in errors.go, so
// callers can branch with [errors.Is] (for example [ErrNotFound] for an
// unknown user) without looking at status codes.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-subs-directory/models"
)

// DirectoryClient talks to a running directory server.
type DirectoryClient interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisteredUser, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByInviteKey(ctx context.Context, key string) (models.UserPreview, error)
	// ListUsers returns every user except excludeID; an empty excludeID
	// returns everyone.
	ListUsers(ctx context.Context, excludeID string) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, req models.UpdateRequest) (models.UpdatedUser, error)
	ResetInviteKey(ctx context.Context, id string) (models.InviteKeyResponse, error)
	ListSubscribers(ctx context.Context, inviteKey string) ([]models.UserPreview, error)

	Subscribe(ctx context.Context, req models.SubscribeRequest) error
	ListSubscriptionTargets(ctx context.Context, userID string) ([]models.User, error)

	ServerVersion(ctx context.Context) (string, error)
}
