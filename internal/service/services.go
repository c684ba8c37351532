// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the directory operations on top of the store
// and the invite key generator.
package service

import (
	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/store"
	"github.com/MKhiriev/go-subs-directory/internal/utils"
)

type Services struct {
	UserService         UserService
	SubscriptionService SubscriptionService
	AppInfoService      AppInfoService
	StatsService        StatsService
}

func NewServices(storages *store.Storages, keys KeyGenerator, version string, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(version, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		UserService:         NewUserService(storages.UserRepository, keys, utils.NewUUIDGenerator(), SystemClock, logger),
		SubscriptionService: NewSubscriptionService(storages.SubscriptionRepository, storages.UserRepository, SystemClock, logger),
		AppInfoService:      appInfo,
		StatsService:        NewStatsService(storages.UserRepository, storages.SubscriptionRepository, logger),
	}, nil
}
