// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Nickname string   `json:"nickname"`
	Settings Settings `json:"settings"`
}

// UpdateRequest is the body of PUT /api/users/update/{id}.
// Both fields replace the stored values wholesale.
type UpdateRequest struct {
	Nickname string   `json:"nickname"`
	Settings Settings `json:"settings"`
}

// SubscribeRequest is the body of POST /api/subscriptions.
type SubscribeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}
