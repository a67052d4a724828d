// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package policy decides what an actor may see and change.
//
// Administrators see and mutate every record. Agents see and mutate only the
// records they own; read, edit and delete share the same rule. A denial is a
// plain false, never an error: callers turn it into their own Forbidden.
package policy

import (
	"github.com/MKhiriev/go-mini-crm/models"
)

// Scope is the visibility of list and search queries.
type Scope int

const (
	// ScopeOwnedOnly restricts queries to records owned by the actor.
	ScopeOwnedOnly Scope = iota
	// ScopeAll applies no owner filter.
	ScopeAll
)

func (s Scope) String() string {
	if s == ScopeAll {
		return "all"
	}
	return "owned_only"
}

// Operation is a record-level action checked by Authorize.
type Operation string

const (
	OperationRead   Operation = "read"
	OperationWrite  Operation = "write"
	OperationDelete Operation = "delete"
)

// ScopeFor returns the visibility scope of role. Unknown roles get the
// narrowest scope.
func ScopeFor(role models.Role) Scope {
	if role == models.RoleAdministrator {
		return ScopeAll
	}
	return ScopeOwnedOnly
}

// Authorize reports whether actor may perform op on a record owned by ownerID.
func Authorize(actor models.Actor, ownerID int64, op Operation) bool {
	switch op {
	case OperationRead, OperationWrite, OperationDelete:
	default:
		return false
	}

	if ScopeFor(actor.Role) == ScopeAll {
		return true
	}

	return actor.UserID != 0 && actor.UserID == ownerID
}

// CanAdminister reports whether actor may manage accounts.
func CanAdminister(actor models.Actor) bool {
	return actor.Role == models.RoleAdministrator
}

// OwnerFilter returns the store filter matching the actor's scope.
func OwnerFilter(actor models.Actor) models.OwnerFilter {
	if ScopeFor(actor.Role) == ScopeAll {
		return models.OwnerFilter{}
	}

	return models.OwnerFilter{
		Restricted: true,
		UserID:     actor.UserID,
		Username:   actor.Username,
	}
}
