// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Subscription is a directed edge between two users: From follows To.
// The pair (From, To) is unique.
type Subscription struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Subscription model.
func (s Subscription) TableName() string {
	return "subscriptions"
}
