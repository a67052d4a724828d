// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps revoked token IDs in a bounded LRU. Entries live for the
// full token duration, which is the longest any token stays valid.
type MemoryStore struct {
	revoked *expirable.LRU[string, struct{}]
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		revoked: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if !until.After(time.Now()) {
		return nil
	}
	s.revoked.Add(tokenID, struct{}{})
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked.Contains(tokenID), nil
}

func (s *MemoryStore) Close() error {
	s.revoked.Purge()
	return nil
}
