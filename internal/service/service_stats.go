// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/store"
	"github.com/MKhiriev/go-subs-directory/models"
)

type statsService struct {
	users         store.UserRepository
	subscriptions store.SubscriptionRepository

	logger *logger.Logger
}

func NewStatsService(users store.UserRepository, subscriptions store.SubscriptionRepository, logger *logger.Logger) StatsService {
	return &statsService{
		users:         users,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

func (s *statsService) Snapshot(ctx context.Context) (models.DirectoryStats, error) {
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return models.DirectoryStats{}, fmt.Errorf("error counting users: %w", err)
	}

	subscriptions, err := s.subscriptions.CountSubscriptions(ctx)
	if err != nil {
		return models.DirectoryStats{}, fmt.Errorf("error counting subscriptions: %w", err)
	}

	return models.DirectoryStats{Users: users, Subscriptions: subscriptions}, nil
}
