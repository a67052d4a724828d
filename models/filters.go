// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// OwnerFilter narrows a query to the records visible to an actor.
// When Restricted is false every record is visible.
type OwnerFilter struct {
	Restricted bool

	// UserID restricts rows linked to an owning account.
	UserID int64

	// Username restricts rows attributed by label (revenue).
	Username string
}

// ClientFilter selects clients.
type ClientFilter struct {
	Owner OwnerFilter

	// Pattern is a LIKE pattern matched case-insensitively against the
	// searchable client fields. Empty means no search.
	Pattern string
}

// AppointmentFilter selects appointments.
type AppointmentFilter struct {
	Owner OwnerFilter

	// Date keeps only appointments scheduled on that day.
	Date string

	ClientID *int64
	Limit    uint64
}

// DocumentFilter selects documents.
type DocumentFilter struct {
	Owner    OwnerFilter
	ClientID *int64
	Limit    uint64
}
