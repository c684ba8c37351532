// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no user matches the id or invite key.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserIDTaken is returned when CreateUser hits an existing id.
	ErrUserIDTaken = errors.New("user id already taken")

	// ErrSubscriptionAlreadyExists is returned when the (from, to) pair is
	// already stored.
	ErrSubscriptionAlreadyExists = errors.New("subscription already exists")

	// ErrUnsupportedDSN is returned by NewStorages for a DSN it cannot open.
	ErrUnsupportedDSN = errors.New("unsupported storage dsn")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with
	// squirrel fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or UPDATE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrConnectingDatabase is returned when the database cannot be reached
	// within the configured connect timeout.
	ErrConnectingDatabase = errors.New("error connecting database")
)
