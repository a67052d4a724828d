// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Appointment date and time layouts. Both are stored as canonical text so
// that lexicographic order matches chronological order.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is a scheduled meeting. ClientName is denormalized: it is copied
// from the linked client when ClientID is set and free text otherwise.
type Appointment struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	ClientName string `json:"client_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Notes      string `json:"notes"`
	ClientID   *int64 `json:"client_id,omitempty"`
	UserID     int64  `json:"user_id"`
}

// TableName returns the name of the database table
// associated with the Appointment model.
func (a Appointment) TableName() string {
	return "appointments"
}

// AppointmentInput carries the editable fields of an appointment.
type AppointmentInput struct {
	Title      string `json:"title" validate:"required,notblank,max=120"`
	ClientName string `json:"client_name" validate:"required_without=ClientID,max=120"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
	Notes      string `json:"notes"`
	ClientID   *int64 `json:"client_id,omitempty"`
}
