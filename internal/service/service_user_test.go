// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/mock"
	"github.com/MKhiriev/go-subs-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type fixedIDs struct{ id string }

func (f fixedIDs) Generate() string { return f.id }

var (
	errStorage = errors.New("storage error")
	fixedNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return fixedNow }

type userServiceDeps struct {
	users *mock.MockUserRepository
	keys  *mock.MockKeyGenerator
}

func newTestUserService(t *testing.T) (UserService, userServiceDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := userServiceDeps{
		users: mock.NewMockUserRepository(ctrl),
		keys:  mock.NewMockKeyGenerator(ctrl),
	}

	svc := NewUserService(deps.users, deps.keys, fixedIDs{id: "user-1"}, fixedClock, logger.Nop())
	return svc, deps
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestUserService_Register_Success(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()
	settings := models.Settings{"theme": "dark"}

	deps.keys.EXPECT().Generate(ctx).Return("KEY123", nil)
	deps.users.EXPECT().CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "user-1", u.ID)
			assert.Equal(t, "alice", u.Nickname)
			assert.Equal(t, "KEY123", u.InviteKey)
			assert.Equal(t, settings, u.Settings)
			assert.Equal(t, fixedNow, u.CreatedAt)
			assert.Equal(t, fixedNow, u.LastUpdateAt)
			return u, nil
		})

	got, err := svc.Register(ctx, models.RegisterRequest{Nickname: "alice", Settings: settings})

	require.NoError(t, err)
	assert.Equal(t, models.RegisteredUser{
		ID:        "user-1",
		Nickname:  "alice",
		Settings:  settings,
		InviteKey: "KEY123",
	}, got)
}

func TestUserService_Register_NilSettingsBecomeEmpty(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.keys.EXPECT().Generate(ctx).Return("KEY123", nil)
	deps.users.EXPECT().CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			return u, nil
		})

	got, err := svc.Register(ctx, models.RegisterRequest{Nickname: "bob"})

	require.NoError(t, err)
	assert.NotNil(t, got.Settings)
	assert.Empty(t, got.Settings)
}

func TestUserService_Register_GeneratorError_NoWrite(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.keys.EXPECT().Generate(ctx).Return("", ErrKeySpaceExhausted)
	deps.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Register(ctx, models.RegisterRequest{Nickname: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeySpaceExhausted)
}

func TestUserService_Register_StorageError(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.keys.EXPECT().Generate(ctx).Return("KEY123", nil)
	deps.users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, errStorage)

	_, err := svc.Register(ctx, models.RegisterRequest{Nickname: "alice"})

	assert.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// Get / GetByInviteKey / List
// ─────────────────────────────────────────────

func TestUserService_Get_Delegates(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()
	want := models.User{ID: "u1", Nickname: "alice"}

	deps.users.EXPECT().FindUserByID(ctx, "u1").Return(want, nil)

	got, err := svc.Get(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().FindUserByID(ctx, "missing").Return(models.User{}, ErrUserNotFound)

	_, err := svc.Get(ctx, "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetByInviteKey_Delegates(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()
	want := models.UserPreview{ID: "u1", Nickname: "alice", InviteKey: "KEY"}

	deps.users.EXPECT().FindUserByInviteKey(ctx, "KEY").Return(want, nil)

	got, err := svc.GetByInviteKey(ctx, "KEY")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserService_List_NilBecomesEmpty(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().ListUsers(ctx, "u1").Return(nil, nil)

	got, err := svc.List(ctx, "u1")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUserService_List_StorageError(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().ListUsers(ctx, "").Return(nil, errStorage)

	got, err := svc.List(ctx, "")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

func TestUserService_Update_Success(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()
	settings := models.Settings{"online": map[string]any{"subs": []any{"K1"}}}

	deps.users.EXPECT().FindUserByID(ctx, "u1").
		Return(models.User{ID: "u1", LastUpdateAt: fixedNow.Add(-time.Hour)}, nil)
	deps.users.EXPECT().UpdateUser(ctx, models.UserUpdate{
		ID:           "u1",
		Nickname:     "renamed",
		Settings:     settings,
		LastUpdateAt: fixedNow,
	}).Return(nil)

	got, err := svc.Update(ctx, "u1", models.UpdateRequest{Nickname: "renamed", Settings: settings})

	require.NoError(t, err)
	assert.Equal(t, models.UpdatedUser{ID: "u1", Nickname: "renamed", Settings: settings}, got)
}

func TestUserService_Update_TimestampAlwaysAdvances(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	// the stored timestamp equals the clock reading
	deps.users.EXPECT().FindUserByID(ctx, "u1").
		Return(models.User{ID: "u1", LastUpdateAt: fixedNow}, nil)
	deps.users.EXPECT().UpdateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.UserUpdate) error {
			assert.True(t, u.LastUpdateAt.After(fixedNow))
			return nil
		})

	_, err := svc.Update(ctx, "u1", models.UpdateRequest{Nickname: "x"})
	require.NoError(t, err)
}

func TestUserService_Update_NotFound_NoWrite(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().FindUserByID(ctx, "missing").Return(models.User{}, ErrUserNotFound)
	deps.users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Update(ctx, "missing", models.UpdateRequest{Nickname: "x"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Update_StorageError(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().FindUserByID(ctx, "u1").Return(models.User{ID: "u1"}, nil)
	deps.users.EXPECT().UpdateUser(ctx, gomock.Any()).Return(errStorage)

	_, err := svc.Update(ctx, "u1", models.UpdateRequest{Nickname: "x"})

	assert.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// ResetInviteKey
// ─────────────────────────────────────────────

func TestUserService_ResetInviteKey_Success(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().FindUserByID(ctx, "u1").
		Return(models.User{ID: "u1", InviteKey: "OLD", LastUpdateAt: fixedNow.Add(-time.Minute)}, nil)
	deps.keys.EXPECT().Generate(ctx).Return("NEW", nil)
	deps.users.EXPECT().UpdateInviteKey(ctx, "u1", "NEW", fixedNow).Return(nil)

	got, err := svc.ResetInviteKey(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, models.InviteKeyResponse{ID: "u1", InviteKey: "NEW"}, got)
}

func TestUserService_ResetInviteKey_NotFound_NoGeneration(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().FindUserByID(ctx, "missing").Return(models.User{}, ErrUserNotFound)
	deps.keys.EXPECT().Generate(gomock.Any()).Times(0)

	_, err := svc.ResetInviteKey(ctx, "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ResetInviteKey_Exhausted(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().FindUserByID(ctx, "u1").Return(models.User{ID: "u1"}, nil)
	deps.keys.EXPECT().Generate(ctx).Return("", ErrKeySpaceExhausted)
	deps.users.EXPECT().UpdateInviteKey(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.ResetInviteKey(ctx, "u1")

	assert.ErrorIs(t, err, ErrKeySpaceExhausted)
}

// ─────────────────────────────────────────────
// ListSubscribers
// ─────────────────────────────────────────────

func TestUserService_ListSubscribers_UnknownKey(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().FindUserByInviteKey(ctx, "NOPE").Return(models.UserPreview{}, ErrUserNotFound)
	deps.users.EXPECT().ListSubscribers(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.ListSubscribers(ctx, "NOPE")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ListSubscribers_EmptyIsNotNil(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()

	deps.users.EXPECT().FindUserByInviteKey(ctx, "KEY").Return(models.UserPreview{ID: "u1"}, nil)
	deps.users.EXPECT().ListSubscribers(ctx, "KEY").Return(nil, nil)

	got, err := svc.ListSubscribers(ctx, "KEY")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUserService_ListSubscribers_Success(t *testing.T) {
	svc, deps := newTestUserService(t)
	ctx := context.Background()
	want := []models.UserPreview{{ID: "u2", Nickname: "bob"}}

	deps.users.EXPECT().FindUserByInviteKey(ctx, "KEY").Return(models.UserPreview{ID: "u1"}, nil)
	deps.users.EXPECT().ListSubscribers(ctx, "KEY").Return(want, nil)

	got, err := svc.ListSubscribers(ctx, "KEY")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// ─────────────────────────────────────────────
// after
// ─────────────────────────────────────────────

func TestAfter(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, base.Add(time.Second), after(base, base.Add(time.Second)))
	assert.Equal(t, base.Add(time.Microsecond), after(base, base))
	assert.Equal(t, base.Add(time.Microsecond), after(base, base.Add(-time.Hour)))
}

func TestSystemClock_UTCMicrosecond(t *testing.T) {
	now := SystemClock()

	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
}
