// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-mini-crm/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ActorCtxKey is the key used to store the authenticated [models.Actor]
// in the request context.
//
//	ctx := context.WithValue(ctx, utils.ActorCtxKey, actor)
var ActorCtxKey = contextKey("actor")

// TokenCtxKey is the key used to store the parsed bearer [models.Token]
// in the request context, so that logout can revoke it.
var TokenCtxKey = contextKey("token")

// GetActorFromContext retrieves the authenticated actor from the context.
// ok is false when the value is missing or has an unexpected type.
func GetActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorCtxKey).(models.Actor)
	return actor, ok
}

// GetTokenFromContext retrieves the parsed bearer token from the context.
func GetTokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(models.Token)
	return token, ok
}
