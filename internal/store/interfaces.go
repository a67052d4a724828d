// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-mini-crm/models"
)

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	FirstAdministrator(ctx context.Context) (models.User, error)

	// DeleteAgentReassigningRecords moves every client, appointment,
	// document and message owned by agentID to fallbackID and deletes the
	// agent, all in one transaction.
	DeleteAgentReassigningRecords(ctx context.Context, agentID, fallbackID int64) (models.ReassignmentReport, error)
}

// ClientRepository persists clients.
type ClientRepository interface {
	CreateClient(ctx context.Context, client models.Client) (models.Client, error)
	GetClient(ctx context.Context, id int64) (models.Client, error)
	UpdateClient(ctx context.Context, client models.Client) error
	ListClients(ctx context.Context, filter models.ClientFilter) ([]models.Client, error)
	CountClients(ctx context.Context, owner models.OwnerFilter) (int64, error)
}

// AppointmentRepository persists appointments.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment models.Appointment) error
	DeleteAppointment(ctx context.Context, id int64) error
	ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	CountAppointments(ctx context.Context, owner models.OwnerFilter) (int64, error)
}

// DocumentRepository persists document metadata. File bytes live in
// [FileStorage].
type DocumentRepository interface {
	CreateDocument(ctx context.Context, document models.Document) (models.Document, error)
	GetDocument(ctx context.Context, id int64) (models.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
	ListDocuments(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error)
	CountDocuments(ctx context.Context, owner models.OwnerFilter) (int64, error)
}

// RevenueRepository persists revenue entries. Visibility follows the
// commercial label, not an owning account.
type RevenueRepository interface {
	CreateRevenue(ctx context.Context, revenue models.Revenue) (models.Revenue, error)
	ListRevenue(ctx context.Context, owner models.OwnerFilter) ([]models.Revenue, error)
	SumRevenue(ctx context.Context, owner models.OwnerFilter) (float64, error)
}

// MessageRepository persists chat messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, message models.Message) (models.Message, error)
	GetMessage(ctx context.Context, id int64) (models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
}

// ErrorClassificator decides how a driver error should be reported.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
