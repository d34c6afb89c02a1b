// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a sign-up or profile update
	// collides with the unique e-mail constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRowNotFound is returned when an update or delete targets an id that
	// does not exist in the table.
	ErrRowNotFound = errors.New("row was not found")

	// ErrUnknownColumn is returned when a record carries a field that is not
	// a writable column of the table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrEmptyRecord is returned when an insert or update carries no
	// writable field.
	ErrEmptyRecord = errors.New("record has no writable fields")

	// ErrInvalidRecord is returned when the database rejects a row because
	// of a NOT NULL or CHECK constraint, e.g. a blank name.
	ErrInvalidRecord = errors.New("record violates table constraints")

	// ErrNoLocalSession is returned by the client session repository when
	// nothing has been saved yet.
	ErrNoLocalSession = errors.New("no local session")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
