// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is the access level of an account.
type Role string

const (
	// RoleAdministrator sees and mutates every record and manages agents.
	RoleAdministrator Role = "admin"
	// RoleAgent sees and mutates only the records it owns.
	RoleAgent Role = "agent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleAgent
}

// User represents an account (identity) able to authenticate against the CRM.
// The password secret is a bcrypt hash and is never serialized.
type User struct {
	// ID is the store-assigned identifier of the account.
	ID int64 `json:"id"`

	// Username is unique across all accounts and never empty.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string `json:"-"`

	// Role decides the visibility scope of the account.
	Role Role `json:"role"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsAdministrator reports whether the account has the administrator role.
func (u User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// Actor returns the request identity derived from the account.
func (u User) Actor() Actor {
	return Actor{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// Actor is the identity on whose behalf an operation runs.
// It is resolved from the bearer token on every request and passed
// explicitly into every service call.
type Actor struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdministrator reports whether the actor has the administrator role.
func (a Actor) IsAdministrator() bool {
	return a.Role == RoleAdministrator
}

// AgentInput carries the fields needed to create an agent account.
type AgentInput struct {
	Username string `json:"username" validate:"required,notblank,max=120"`
	Password string `json:"password" validate:"required"`
}

// AgentUpdate carries an agent edit. A blank Password keeps the current one.
type AgentUpdate struct {
	Username string `json:"username" validate:"required,notblank,max=120"`
	Password string `json:"password"`
}

// PasswordChange carries a self-service password rotation.
type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ReassignmentReport counts the records relinked to the fallback administrator
// when an agent account is deleted.
type ReassignmentReport struct {
	DeletedUserID  int64 `json:"deleted_user_id"`
	FallbackUserID int64 `json:"fallback_user_id"`
	Clients        int64 `json:"clients"`
	Appointments   int64 `json:"appointments"`
	Documents      int64 `json:"documents"`
	Messages       int64 `json:"messages"`
}
