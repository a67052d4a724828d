// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MKhiriev/go-mini-crm/models"
)

var (
	identityCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_identity_cache_hits_total",
		Help: "Number of identity lookups served from the cache.",
	})
	identityCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_identity_cache_misses_total",
		Help: "Number of identity lookups that went to the store.",
	})
)

// DefaultIdentityTTL bounds how long a resolved account is trusted without
// going back to the store.
const DefaultIdentityTTL = 30 * time.Second

// IdentityCache keeps recently resolved accounts by ID. Every mutation of an
// account removes its entry. A lookup racing with a mutation can re-add the
// old identity, so entries also expire after ttl.
type IdentityCache struct {
	users *expirable.LRU[int64, models.User]
}

func NewIdentityCache(size int, ttl time.Duration) (*IdentityCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidIdentityCache, size)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidIdentityCache, ttl)
	}
	return &IdentityCache{users: expirable.NewLRU[int64, models.User](size, nil, ttl)}, nil
}

func (c *IdentityCache) Get(id int64) (models.User, bool) {
	user, ok := c.users.Get(id)
	if ok {
		identityCacheHitsTotal.Inc()
		return user, true
	}
	identityCacheMissesTotal.Inc()
	return models.User{}, false
}

func (c *IdentityCache) Add(user models.User) {
	c.users.Add(user.ID, user)
}

func (c *IdentityCache) Remove(id int64) {
	c.users.Remove(id)
}
