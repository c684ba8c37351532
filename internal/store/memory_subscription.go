// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/models"
)

type subscriptionKey struct {
	from, to string
}

// memorySubscriptionRepository is an in-process [SubscriptionRepository].
// Edges are kept in insertion order.
type memorySubscriptionRepository struct {
	mu     sync.RWMutex
	index  map[subscriptionKey]struct{}
	edges  []models.Subscription
	logger *logger.Logger
}

func NewMemorySubscriptionRepository(logger *logger.Logger) SubscriptionRepository {
	logger.Debug().Msg("creating in-memory subscription repository")
	return &memorySubscriptionRepository{
		index:  make(map[subscriptionKey]struct{}),
		logger: logger,
	}
}

func (r *memorySubscriptionRepository) SubscriptionExists(_ context.Context, from, to string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[subscriptionKey{from: from, to: to}]
	return ok, nil
}

func (r *memorySubscriptionRepository) CreateSubscription(_ context.Context, subscription models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := subscriptionKey{from: subscription.From, to: subscription.To}
	if _, ok := r.index[key]; ok {
		return ErrSubscriptionAlreadyExists
	}

	r.index[key] = struct{}{}
	r.edges = append(r.edges, subscription)

	return nil
}

func (r *memorySubscriptionRepository) ListSubscriptionTargets(_ context.Context, from string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]string, 0)
	for _, edge := range r.edges {
		if edge.From == from {
			targets = append(targets, edge.To)
		}
	}

	return targets, nil
}

func (r *memorySubscriptionRepository) CountSubscriptions(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.edges)), nil
}
