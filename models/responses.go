// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisteredUser is returned by a successful registration.
type RegisteredUser struct {
	ID        string   `json:"id"`
	Nickname  string   `json:"nickname"`
	Settings  Settings `json:"settings"`
	InviteKey string   `json:"inviteKey"`
}

// UpdatedUser echoes the submitted fields of an update. Timestamps and the
// invite key are not included.
type UpdatedUser struct {
	ID       string   `json:"id"`
	Nickname string   `json:"nickname"`
	Settings Settings `json:"settings"`
}

// InviteKeyResponse is returned by an invite key reset.
type InviteKeyResponse struct {
	ID        string `json:"id"`
	InviteKey string `json:"inviteKey"`
}

// SuccessResponse acknowledges an operation that has no payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
