// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session keeps the identifiers of revoked access tokens until the
// tokens would have expired anyway. Logout revokes a token; every
// authenticated request checks it.
package session

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
)

// Store records revoked token identifiers.
type Store interface {
	// Revoke marks tokenID revoked until the given instant.
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	// IsRevoked reports whether tokenID was revoked and has not expired yet.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Close() error
}

const defaultMemoryStoreSize = 10_000

// NewStore returns a Redis store when a Redis URL is configured, otherwise
// an in-process store that forgets revocations on restart.
func NewStore(cfg config.Sessions, tokenDuration time.Duration, log *logger.Logger) (Store, error) {
	if cfg.RedisURL == "" {
		log.Info().Str("func", "session.NewStore").Msg("using in-memory revocation store")
		return NewMemoryStore(defaultMemoryStoreSize, tokenDuration), nil
	}

	store, err := NewRedisStore(cfg.RedisURL)
	if err != nil {
		log.Err(err).Str("func", "session.NewStore").Msg("failed to connect to redis")
		return nil, err
	}

	log.Info().Str("func", "session.NewStore").Msg("using redis revocation store")
	return store, nil
}
