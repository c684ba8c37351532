// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Settings is the free-form user settings document. It is stored as-is and
// replaced wholesale on every update.
//
// The only path the server interprets is settings.online.subs: a list of
// invite keys the user is subscribed to (see [Settings.Subscriptions]).
type Settings map[string]any

// User represents a directory entry.
type User struct {
	// ID is the opaque identifier assigned by the store at creation.
	// It never changes afterwards.
	ID string `json:"id"`

	// Nickname is the display name. It is NOT unique.
	Nickname string `json:"nickname"`

	// Settings is the user-owned settings document.
	Settings Settings `json:"settings"`

	// InviteKey is the public lookup handle distinct from ID. Empty when
	// the user has no key assigned.
	InviteKey string `json:"inviteKey,omitempty"`

	// CreatedAt is set once when the user is registered.
	CreatedAt time.Time `json:"createdAt"`

	// LastUpdateAt is set at creation and advanced on every update.
	LastUpdateAt time.Time `json:"lastUpdateAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Preview returns the reduced projection of u.
func (u User) Preview() UserPreview {
	return UserPreview{
		ID:           u.ID,
		Nickname:     u.Nickname,
		LastUpdateAt: u.LastUpdateAt,
		InviteKey:    u.InviteKey,
	}
}

// UserPreview is the reduced projection of [User] returned by invite key
// lookups and subscriber listings.
type UserPreview struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	LastUpdateAt time.Time `json:"lastUpdateAt"`
	InviteKey    string    `json:"inviteKey,omitempty"`
}

// UserUpdate carries the fields written by an update operation.
type UserUpdate struct {
	ID           string
	Nickname     string
	Settings     Settings
	LastUpdateAt time.Time
}

// Subscriptions returns the invite keys listed under settings.online.subs.
// Non-string entries and malformed documents are ignored.
func (s Settings) Subscriptions() []string {
	var online map[string]any
	switch nested := s["online"].(type) {
	case map[string]any:
		online = nested
	case Settings:
		online = nested
	default:
		return nil
	}

	switch subs := online["subs"].(type) {
	case []string:
		return subs
	case []any:
		keys := make([]string, 0, len(subs))
		for _, sub := range subs {
			if key, ok := sub.(string); ok {
				keys = append(keys, key)
			}
		}
		return keys
	default:
		return nil
	}
}

// SubscribesTo reports whether inviteKey is listed under settings.online.subs.
func (s Settings) SubscribesTo(inviteKey string) bool {
	for _, key := range s.Subscriptions() {
		if key == inviteKey {
			return true
		}
	}

	return false
}
