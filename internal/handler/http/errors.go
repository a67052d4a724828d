// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the "Bearer <token>" form.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrMissingActor    = errors.New("no authenticated actor in request context")
	ErrInvalidJSON     = errors.New("invalid JSON was passed")
	ErrInvalidID       = errors.New("invalid record id")
	ErrInvalidForm     = errors.New("invalid multipart form")
	ErrInvalidClientID = errors.New("invalid client_id")
)
