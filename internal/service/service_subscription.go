// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/store"
	"github.com/MKhiriev/go-subs-directory/models"
)

// subscriptionService works on the explicit edge table only. It never reads
// settings.online.subs.
type subscriptionService struct {
	subscriptions store.SubscriptionRepository
	users         store.UserRepository
	now           Clock

	logger *logger.Logger
}

func NewSubscriptionService(subscriptions store.SubscriptionRepository, users store.UserRepository, now Clock, logger *logger.Logger) SubscriptionService {
	if now == nil {
		now = SystemClock
	}

	return &subscriptionService{
		subscriptions: subscriptions,
		users:         users,
		now:           now,
		logger:        logger,
	}
}

// Subscribe stores the edge from → to. A second call for the same pair
// returns ErrAlreadySubscribed and stores nothing.
func (s *subscriptionService) Subscribe(ctx context.Context, req models.SubscribeRequest) error {
	log := logger.FromContext(ctx)

	exists, err := s.subscriptions.SubscriptionExists(ctx, req.From, req.To)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadySubscribed
	}

	err = s.subscriptions.CreateSubscription(ctx, models.Subscription{
		From:      req.From,
		To:        req.To,
		CreatedAt: s.now(),
	})
	if err != nil {
		return err
	}

	log.Debug().Str("func", "*subscriptionService.Subscribe").Str("from", req.From).Str("to", req.To).Msg("subscription created")
	return nil
}

// ListTargets returns the users userID subscribed to, in subscription order.
// Edges pointing at unknown users are skipped.
func (s *subscriptionService) ListTargets(ctx context.Context, userID string) ([]models.User, error) {
	targets, err := s.subscriptions.ListSubscriptionTargets(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return []models.User{}, nil
	}

	found, err := s.users.ListUsersByIDs(ctx, targets)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	users := make([]models.User, 0, len(found))
	for _, id := range targets {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}

	return users, nil
}
