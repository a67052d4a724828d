// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service matches at most these with
// [errors.Is]; the transport layer maps kinds to responses.
var (
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// kindError is a specific error belonging to one or more kinds.
type kindError struct {
	msg   string
	kinds []error
}

func newKindError(msg string, kinds ...error) error {
	return &kindError{msg: msg, kinds: kinds}
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() []error {
	return e.kinds
}

var (
	ErrInvalidCredentials      = newKindError("invalid username or password", ErrUnauthenticated)
	ErrTokenIsExpiredOrInvalid = newKindError("token is expired or invalid", ErrUnauthenticated)
	ErrTokenRevoked            = newKindError("token was revoked", ErrUnauthenticated)
	ErrUnknownIdentity         = newKindError("account no longer exists", ErrUnauthenticated)

	ErrWrongPassword = newKindError("current password is wrong", ErrValidation)

	ErrAdministrationOnly       = newKindError("administrator access required", ErrForbidden)
	ErrRecordForbidden          = newKindError("record belongs to another user", ErrForbidden)
	ErrAdministratorNotEditable = newKindError("administrator accounts cannot be edited", ErrForbidden)

	// ErrAdministratorNotDeletable is both a denial and a conflict with the
	// rule that an administrator must always exist.
	ErrAdministratorNotDeletable = newKindError("administrator accounts cannot be deleted", ErrForbidden, ErrConflict)

	ErrUsernameTaken = newKindError("username already taken", ErrConflict)

	ErrUserNotFound        = newKindError("user not found", ErrNotFound)
	ErrClientNotFound      = newKindError("client not found", ErrNotFound)
	ErrAppointmentNotFound = newKindError("appointment not found", ErrNotFound)
	ErrDocumentNotFound    = newKindError("document not found", ErrNotFound)
	ErrMessageNotFound     = newKindError("message not found", ErrNotFound)
	ErrAttachmentNotFound  = newKindError("message has no attachment", ErrNotFound)
	ErrFileNotFound        = newKindError("file not found", ErrNotFound)

	ErrUnsupportedFileType = newKindError("only PDF files are accepted", ErrValidation)
	ErrEmptyFilename       = newKindError("a file is required", ErrValidation)
	ErrEmptyMessage        = newKindError("a message needs text or an attachment", ErrValidation)
)

// Internal errors, not mapped to any kind.
var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrNoAdministrator       = errors.New("no administrator account to reassign records to")
	ErrInvalidIdentityCache  = errors.New("invalid identity cache size")
)

// validationError wraps a validator failure into the validation kind.
func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
