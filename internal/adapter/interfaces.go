// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the CRM JSON API.
//
// [ServerAdapter] hides the transport from the command-line client. Error
// values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrForbidden] for
// 403, [ErrConflict] for 409).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-mini-crm/models"
)

// ServerAdapter talks to the CRM server on behalf of one logged-in account.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)
	Token() string

	// Login authenticates and stores the issued token.
	Login(ctx context.Context, username, password string) (models.User, error)
	// Logout revokes the stored token on the server and forgets it.
	Logout(ctx context.Context) error
	Me(ctx context.Context) (models.Actor, error)
	Version(ctx context.Context) (models.AppInfo, error)
	Dashboard(ctx context.Context) (models.Dashboard, error)

	ListClients(ctx context.Context, query string) ([]models.Client, error)
	CreateClient(ctx context.Context, input models.ClientInput) (models.Client, error)
	GetClient(ctx context.Context, id int64) (models.ClientDetail, error)

	ListAppointments(ctx context.Context, date string) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, input models.AppointmentInput) (models.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error

	ListDocuments(ctx context.Context) ([]models.Document, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader, clientID *int64) (models.Document, error)
	// DownloadDocument writes the file to w and returns its original name.
	DownloadDocument(ctx context.Context, id int64, w io.Writer) (string, error)
	DeleteDocument(ctx context.Context, id int64) error

	ListRevenue(ctx context.Context) (models.RevenueSummary, error)
	AddRevenue(ctx context.Context, input models.RevenueInput) (models.Revenue, error)

	ListMessages(ctx context.Context) ([]models.Message, error)
	SendMessage(ctx context.Context, content string) (models.Message, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateAgent(ctx context.Context, input models.AgentInput) (models.User, error)
	DeleteAgent(ctx context.Context, id int64) (models.ReassignmentReport, error)
}
