// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package invitekey produces short alphanumeric invite keys that no user
// currently owns.
//
// A Generator draws a candidate uniformly from [A-Za-z0-9], asks an
// ExistenceChecker whether any user already owns it and retries on
// collision. The loop is bounded: after MaxAttempts collisions Generate
// returns ErrAttemptsExhausted instead of spinning forever.
//
// The check and the later write are not atomic. Two concurrent generations
// can hand out the same key; the storage layer does not enforce uniqueness
// of invite keys.
//
// Keys come from math/rand/v2 and are not suitable as secrets.
package invitekey
