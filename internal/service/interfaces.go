// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-mini-crm/models"
)

// AuthService verifies credentials and manages access tokens.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	ResolveActor(ctx context.Context, token models.Token) (models.Actor, error)
	Logout(ctx context.Context, token models.Token) error
	ChangePassword(ctx context.Context, actor models.Actor, change models.PasswordChange) error
}

// UserService administers agent accounts.
type UserService interface {
	ListUsers(ctx context.Context, actor models.Actor) ([]models.User, error)
	CreateAgent(ctx context.Context, actor models.Actor, input models.AgentInput) (models.User, error)
	EditAgent(ctx context.Context, actor models.Actor, id int64, input models.AgentUpdate) (models.User, error)
	DeleteAgent(ctx context.Context, actor models.Actor, id int64) (models.ReassignmentReport, error)

	// EnsureAdministrator creates the bootstrap administrator when none
	// exists and reports whether it did.
	EnsureAdministrator(ctx context.Context, username, password string) (bool, error)
}

type ClientService interface {
	ListClients(ctx context.Context, actor models.Actor) ([]models.Client, error)
	SearchClients(ctx context.Context, actor models.Actor, query string) ([]models.Client, error)
	CreateClient(ctx context.Context, actor models.Actor, input models.ClientInput) (models.Client, error)
	GetClient(ctx context.Context, actor models.Actor, id int64) (models.ClientDetail, error)
	UpdateClient(ctx context.Context, actor models.Actor, id int64, input models.ClientInput) (models.Client, error)
}

type AppointmentService interface {
	// ListAppointments filters by rawDate when it parses, otherwise lists
	// everything visible.
	ListAppointments(ctx context.Context, actor models.Actor, rawDate string) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, actor models.Actor, input models.AppointmentInput) (models.Appointment, error)
	UpdateAppointment(ctx context.Context, actor models.Actor, id int64, input models.AppointmentInput) (models.Appointment, error)
	DeleteAppointment(ctx context.Context, actor models.Actor, id int64) (models.Appointment, error)
}

type DocumentService interface {
	ListDocuments(ctx context.Context, actor models.Actor) ([]models.Document, error)
	UploadDocument(ctx context.Context, actor models.Actor, upload models.Upload, clientID *int64) (models.Document, error)
	DownloadDocument(ctx context.Context, actor models.Actor, id int64) (models.FileDownload, error)
	DeleteDocument(ctx context.Context, actor models.Actor, id int64) error
}

type RevenueService interface {
	ListRevenue(ctx context.Context, actor models.Actor) (models.RevenueSummary, error)
	AddRevenue(ctx context.Context, actor models.Actor, input models.RevenueInput) (models.Revenue, error)
	SumRevenue(ctx context.Context, actor models.Actor) (float64, error)
}

// ChatService runs the global chat. Every authenticated user sees every
// message.
type ChatService interface {
	ListMessages(ctx context.Context) ([]models.Message, error)
	SendMessage(ctx context.Context, actor models.Actor, content string, attachment *models.Upload) (models.Message, error)
	DownloadAttachment(ctx context.Context, messageID int64) (models.FileDownload, error)
}

// AttachmentService stores uploaded files under collision-resistant names.
type AttachmentService interface {
	IsAllowed(area models.StorageArea, filename string) bool
	Store(ctx context.Context, area models.StorageArea, upload models.Upload) (string, error)
	Retrieve(ctx context.Context, area models.StorageArea, storedName string) (io.ReadCloser, error)
	// Delete never fails: a missing file is only logged.
	Delete(ctx context.Context, area models.StorageArea, storedName string)
}

type DashboardService interface {
	GetDashboard(ctx context.Context, actor models.Actor) (models.Dashboard, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}
