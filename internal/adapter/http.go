// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/models"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

type httpDirectoryClient struct {
	client *resty.Client

	logger *logger.Logger
}

// NewHTTPDirectoryClient builds a client for the server at address
// ("localhost:3001" or a full URL). A non-positive timeout falls back to 15s.
func NewHTTPDirectoryClient(address string, timeout time.Duration, logger *logger.Logger) (DirectoryClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid directory address: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &httpDirectoryClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ── users ────────────────────────────────────────────────────────────────────

func (h *httpDirectoryClient) Register(ctx context.Context, req models.RegisterRequest) (models.RegisteredUser, error) {
	var registered models.RegisteredUser

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&registered).
		Post("/api/users/register")
	if err != nil {
		return models.RegisteredUser{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisteredUser{}, err
	}

	return registered, nil
}

func (h *httpDirectoryClient) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&user).
		Get("/api/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpDirectoryClient) GetUserByInviteKey(ctx context.Context, key string) (models.UserPreview, error) {
	var preview models.UserPreview

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("key", key).
		SetResult(&preview).
		Get("/api/users/key/{key}")
	if err != nil {
		return models.UserPreview{}, fmt.Errorf("get user by invite key request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPreview{}, err
	}

	return preview, nil
}

func (h *httpDirectoryClient) ListUsers(ctx context.Context, excludeID string) ([]models.User, error) {
	users := []models.User{}

	req := h.client.R().SetContext(ctx).SetResult(&users)
	if excludeID != "" {
		req.SetQueryParam("exclude", excludeID)
	}

	resp, err := req.Get("/api/users/all")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpDirectoryClient) UpdateUser(ctx context.Context, id string, req models.UpdateRequest) (models.UpdatedUser, error) {
	var updated models.UpdatedUser

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(req).
		SetResult(&updated).
		Put("/api/users/update/{id}")
	if err != nil {
		return models.UpdatedUser{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UpdatedUser{}, err
	}

	return updated, nil
}

func (h *httpDirectoryClient) ResetInviteKey(ctx context.Context, id string) (models.InviteKeyResponse, error) {
	var reset models.InviteKeyResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&reset).
		Put("/api/users/resetInviteKey/{id}")
	if err != nil {
		return models.InviteKeyResponse{}, fmt.Errorf("reset invite key request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.InviteKeyResponse{}, err
	}

	return reset, nil
}

func (h *httpDirectoryClient) ListSubscribers(ctx context.Context, inviteKey string) ([]models.UserPreview, error) {
	subscribers := []models.UserPreview{}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("inviteKey", inviteKey).
		SetResult(&subscribers).
		Get("/api/users/subscribers/{inviteKey}")
	if err != nil {
		return nil, fmt.Errorf("list subscribers request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return subscribers, nil
}

// ── subscriptions ────────────────────────────────────────────────────────────

func (h *httpDirectoryClient) Subscribe(ctx context.Context, req models.SubscribeRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/subscriptions")
	if err != nil {
		return fmt.Errorf("subscribe request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpDirectoryClient) ListSubscriptionTargets(ctx context.Context, userID string) ([]models.User, error) {
	targets := []models.User{}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("userId", userID).
		SetResult(&targets).
		Get("/api/subscriptions/{userId}")
	if err != nil {
		return nil, fmt.Errorf("list subscription targets request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return targets, nil
}

// ── app info ─────────────────────────────────────────────────────────────────

func (h *httpDirectoryClient) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return resp.String(), nil
}
