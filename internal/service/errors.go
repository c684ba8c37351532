// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-subs-directory/internal/invitekey"
	"github.com/MKhiriev/go-subs-directory/internal/store"
)

// Errors callers match with errors.Is. They alias the lower-layer sentinels
// so the transport layer only depends on this package.
var (
	ErrUserNotFound      = store.ErrUserNotFound
	ErrAlreadySubscribed = store.ErrSubscriptionAlreadyExists
	ErrKeySpaceExhausted = invitekey.ErrAttemptsExhausted

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
