// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "time"

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is UTC wall time truncated to the microsecond, the precision
// PostgreSQL keeps for TIMESTAMPTZ.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// after returns now, or previous plus one microsecond when the clock has not
// moved past previous. Update timestamps therefore always advance.
func after(previous, now time.Time) time.Time {
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Microsecond)
}
