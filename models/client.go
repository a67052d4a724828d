// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// ClientStatus is the commercial pipeline stage of a client.
type ClientStatus string

// Client statuses. The values are persisted as-is.
const (
	StatusInProgress       ClientStatus = "en cours"
	StatusQuoteRequested   ClientStatus = "demande de cotation"
	StatusMeetingBooked    ClientStatus = "rdv fixé"
	StatusContractSigned   ClientStatus = "contrat signé"
	StatusRefused          ClientStatus = "refusé"
	StatusAwaitingFeedback ClientStatus = "en attente de retour client"
)

// ClientStatuses lists the closed status enumeration in pipeline order.
var ClientStatuses = []ClientStatus{
	StatusInProgress,
	StatusQuoteRequested,
	StatusMeetingBooked,
	StatusContractSigned,
	StatusRefused,
	StatusAwaitingFeedback,
}

// Valid reports whether s belongs to the status enumeration.
func (s ClientStatus) Valid() bool {
	return slices.Contains(ClientStatuses, s)
}

// NormalizeClientStatus returns s when it is a known status and the initial
// status otherwise.
func NormalizeClientStatus(s string) ClientStatus {
	status := ClientStatus(s)
	if status.Valid() {
		return status
	}
	return StatusInProgress
}

// Client is a prospect or customer followed by an agent.
type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`

	// Commercial is a free-text attribution label. It is a historical
	// snapshot and is not kept in sync with the owning account.
	Commercial string `json:"commercial"`

	Status ClientStatus `json:"status"`

	// UserID is the owning account.
	UserID int64 `json:"user_id"`
}

// TableName returns the name of the database table
// associated with the Client model.
func (c Client) TableName() string {
	return "clients"
}

// ClientInput carries the editable fields of a client.
// Status is free text; unknown values fall back to the initial status.
type ClientInput struct {
	Name       string `json:"name" validate:"required,notblank,max=120"`
	Email      string `json:"email" validate:"max=120"`
	Phone      string `json:"phone" validate:"max=50"`
	Address    string `json:"address" validate:"max=255"`
	Notes      string `json:"notes"`
	Commercial string `json:"commercial" validate:"required,notblank,max=120"`
	Status     string `json:"status"`
}

// ClientDetail is a client together with its linked records.
type ClientDetail struct {
	Client       Client        `json:"client"`
	Appointments []Appointment `json:"appointments"`
	Documents    []Document    `json:"documents"`
}
