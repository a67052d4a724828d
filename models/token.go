// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Token is a signed bearer token together with the claims the server needs.
type Token struct {
	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier taken from the "sub" claim.
	UserID int64 `json:"-"`

	// ID is the "jti" claim, used to revoke the token on logout.
	ID string `json:"-"`

	// ExpiresAt is the "exp" claim.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
