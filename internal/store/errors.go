// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when the addressed row does not exist
	// (or, for agent deletion, is not an agent).
	ErrRecordNotFound = errors.New("record not found")

	// ErrUsernameTaken is returned when an insert or update of a user
	// collides with another account's username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrDuplicateRecord is returned on any other unique constraint
	// violation.
	ErrDuplicateRecord = errors.New("duplicate record")

	// ErrReferencedRecordNotFound is returned when a row references a
	// client or user that does not exist.
	ErrReferencedRecordNotFound = errors.New("referenced record not found")

	// ErrConstraintViolated is returned when a CHECK or NOT NULL constraint
	// rejects the row.
	ErrConstraintViolated = errors.New("constraint violated")

	// ErrNoAdministrator is returned when no administrator account exists
	// to receive reassigned records.
	ErrNoAdministrator = errors.New("no administrator account")
)

// File storage errors.
var (
	ErrFileNotFound        = errors.New("file not found")
	ErrFileExists          = errors.New("file already exists")
	ErrInvalidFileName     = errors.New("invalid file name")
	ErrUnknownStorageArea  = errors.New("unknown storage area")
	ErrUnsupportedDriver   = errors.New("unsupported database driver")
	ErrUnsupportedBackend  = errors.New("unsupported file storage backend")
	ErrCreatingStorageRoot = errors.New("failed to create storage directory")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
