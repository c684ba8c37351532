// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DirectoryStats holds directory totals exported as metrics.
type DirectoryStats struct {
	Users         int64 `json:"users"`
	Subscriptions int64 `json:"subscriptions"`
}
