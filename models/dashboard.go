// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Dashboard summarizes the records visible to an actor.
type Dashboard struct {
	ClientsCount         int64         `json:"clients_count"`
	DocumentsCount       int64         `json:"documents_count"`
	AppointmentsCount    int64         `json:"appointments_count"`
	UpcomingAppointments []Appointment `json:"upcoming_appointments"`
	LatestDocuments      []Document    `json:"latest_documents"`
}
