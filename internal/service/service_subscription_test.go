// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/mock"
	"github.com/MKhiriev/go-subs-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSubscriptionService(t *testing.T) (SubscriptionService, *mock.MockSubscriptionRepository, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)

	subs := mock.NewMockSubscriptionRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)

	return NewSubscriptionService(subs, users, fixedClock, logger.Nop()), subs, users
}

// ─────────────────────────────────────────────
// Subscribe
// ─────────────────────────────────────────────

func TestSubscriptionService_Subscribe_Success(t *testing.T) {
	svc, subs, _ := newTestSubscriptionService(t)
	ctx := context.Background()

	subs.EXPECT().SubscriptionExists(ctx, "a", "b").Return(false, nil)
	subs.EXPECT().CreateSubscription(ctx, models.Subscription{From: "a", To: "b", CreatedAt: fixedNow}).Return(nil)

	err := svc.Subscribe(ctx, models.SubscribeRequest{From: "a", To: "b"})

	require.NoError(t, err)
}

func TestSubscriptionService_Subscribe_Duplicate_NoWrite(t *testing.T) {
	svc, subs, _ := newTestSubscriptionService(t)
	ctx := context.Background()

	subs.EXPECT().SubscriptionExists(ctx, "a", "b").Return(true, nil)
	subs.EXPECT().CreateSubscription(gomock.Any(), gomock.Any()).Times(0)

	err := svc.Subscribe(ctx, models.SubscribeRequest{From: "a", To: "b"})

	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestSubscriptionService_Subscribe_RaceLosesToUniqueConstraint(t *testing.T) {
	svc, subs, _ := newTestSubscriptionService(t)
	ctx := context.Background()

	subs.EXPECT().SubscriptionExists(ctx, "a", "b").Return(false, nil)
	subs.EXPECT().CreateSubscription(ctx, gomock.Any()).Return(ErrAlreadySubscribed)

	err := svc.Subscribe(ctx, models.SubscribeRequest{From: "a", To: "b"})

	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestSubscriptionService_Subscribe_ExistsError(t *testing.T) {
	svc, subs, _ := newTestSubscriptionService(t)
	ctx := context.Background()

	subs.EXPECT().SubscriptionExists(ctx, "a", "b").Return(false, errStorage)

	err := svc.Subscribe(ctx, models.SubscribeRequest{From: "a", To: "b"})

	assert.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// ListTargets
// ─────────────────────────────────────────────

func TestSubscriptionService_ListTargets_KeepsEdgeOrder(t *testing.T) {
	svc, subs, users := newTestSubscriptionService(t)
	ctx := context.Background()

	subs.EXPECT().ListSubscriptionTargets(ctx, "a").Return([]string{"c", "b", "gone"}, nil)
	users.EXPECT().ListUsersByIDs(ctx, []string{"c", "b", "gone"}).
		Return([]models.User{{ID: "b", Nickname: "bob"}, {ID: "c", Nickname: "carol"}}, nil)

	got, err := svc.ListTargets(ctx, "a")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestSubscriptionService_ListTargets_NoEdges_NoUserQuery(t *testing.T) {
	svc, subs, users := newTestSubscriptionService(t)
	ctx := context.Background()

	subs.EXPECT().ListSubscriptionTargets(ctx, "a").Return(nil, nil)
	users.EXPECT().ListUsersByIDs(gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.ListTargets(ctx, "a")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSubscriptionService_ListTargets_UserLookupError(t *testing.T) {
	svc, subs, users := newTestSubscriptionService(t)
	ctx := context.Background()

	subs.EXPECT().ListSubscriptionTargets(ctx, "a").Return([]string{"b"}, nil)
	users.EXPECT().ListUsersByIDs(ctx, []string{"b"}).Return(nil, errStorage)

	_, err := svc.ListTargets(ctx, "a")

	assert.ErrorIs(t, err, errStorage)
}
