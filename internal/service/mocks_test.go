// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/MKhiriev/go-mini-crm/models"
)

var errStorage = errors.New("storage error")

var (
	adminActor = models.Actor{UserID: 1, Username: "admin", Role: models.RoleAdministrator}
	aliceActor = models.Actor{UserID: 2, Username: "alice", Role: models.RoleAgent}
	bobActor   = models.Actor{UserID: 3, Username: "bob", Role: models.RoleAgent}
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn         func(ctx context.Context, user models.User) (models.User, error)
	findUserByUsernameFn func(ctx context.Context, username string) (models.User, error)
	findUserByIDFn       func(ctx context.Context, id int64) (models.User, error)
	listUsersFn          func(ctx context.Context) ([]models.User, error)
	updateUserFn         func(ctx context.Context, user models.User) error
	firstAdministratorFn func(ctx context.Context) (models.User, error)
	deleteAgentFn        func(ctx context.Context, agentID, fallbackID int64) (models.ReassignmentReport, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findUserByUsernameFn != nil {
		return m.findUserByUsernameFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, id)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user models.User) error {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FirstAdministrator(ctx context.Context) (models.User, error) {
	if m.firstAdministratorFn != nil {
		return m.firstAdministratorFn(ctx)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) DeleteAgentReassigningRecords(ctx context.Context, agentID, fallbackID int64) (models.ReassignmentReport, error) {
	if m.deleteAgentFn != nil {
		return m.deleteAgentFn(ctx, agentID, fallbackID)
	}
	return models.ReassignmentReport{DeletedUserID: agentID, FallbackUserID: fallbackID}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ClientRepository
// ─────────────────────────────────────────────

type mockClientRepository struct {
	createClientFn func(ctx context.Context, client models.Client) (models.Client, error)
	getClientFn    func(ctx context.Context, id int64) (models.Client, error)
	updateClientFn func(ctx context.Context, client models.Client) error
	listClientsFn  func(ctx context.Context, filter models.ClientFilter) ([]models.Client, error)
	countClientsFn func(ctx context.Context, owner models.OwnerFilter) (int64, error)
}

func (m *mockClientRepository) CreateClient(ctx context.Context, client models.Client) (models.Client, error) {
	if m.createClientFn != nil {
		return m.createClientFn(ctx, client)
	}
	return client, nil
}

func (m *mockClientRepository) GetClient(ctx context.Context, id int64) (models.Client, error) {
	if m.getClientFn != nil {
		return m.getClientFn(ctx, id)
	}
	return models.Client{}, nil
}

func (m *mockClientRepository) UpdateClient(ctx context.Context, client models.Client) error {
	if m.updateClientFn != nil {
		return m.updateClientFn(ctx, client)
	}
	return nil
}

func (m *mockClientRepository) ListClients(ctx context.Context, filter models.ClientFilter) ([]models.Client, error) {
	if m.listClientsFn != nil {
		return m.listClientsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockClientRepository) CountClients(ctx context.Context, owner models.OwnerFilter) (int64, error) {
	if m.countClientsFn != nil {
		return m.countClientsFn(ctx, owner)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.AppointmentRepository
// ─────────────────────────────────────────────

type mockAppointmentRepository struct {
	createAppointmentFn func(ctx context.Context, appointment models.Appointment) (models.Appointment, error)
	getAppointmentFn    func(ctx context.Context, id int64) (models.Appointment, error)
	updateAppointmentFn func(ctx context.Context, appointment models.Appointment) error
	deleteAppointmentFn func(ctx context.Context, id int64) error
	listAppointmentsFn  func(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	countAppointmentsFn func(ctx context.Context, owner models.OwnerFilter) (int64, error)
}

func (m *mockAppointmentRepository) CreateAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	if m.createAppointmentFn != nil {
		return m.createAppointmentFn(ctx, appointment)
	}
	return appointment, nil
}

func (m *mockAppointmentRepository) GetAppointment(ctx context.Context, id int64) (models.Appointment, error) {
	if m.getAppointmentFn != nil {
		return m.getAppointmentFn(ctx, id)
	}
	return models.Appointment{}, nil
}

func (m *mockAppointmentRepository) UpdateAppointment(ctx context.Context, appointment models.Appointment) error {
	if m.updateAppointmentFn != nil {
		return m.updateAppointmentFn(ctx, appointment)
	}
	return nil
}

func (m *mockAppointmentRepository) DeleteAppointment(ctx context.Context, id int64) error {
	if m.deleteAppointmentFn != nil {
		return m.deleteAppointmentFn(ctx, id)
	}
	return nil
}

func (m *mockAppointmentRepository) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	if m.listAppointmentsFn != nil {
		return m.listAppointmentsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) CountAppointments(ctx context.Context, owner models.OwnerFilter) (int64, error) {
	if m.countAppointmentsFn != nil {
		return m.countAppointmentsFn(ctx, owner)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.DocumentRepository
// ─────────────────────────────────────────────

type mockDocumentRepository struct {
	createDocumentFn func(ctx context.Context, document models.Document) (models.Document, error)
	getDocumentFn    func(ctx context.Context, id int64) (models.Document, error)
	deleteDocumentFn func(ctx context.Context, id int64) error
	listDocumentsFn  func(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error)
	countDocumentsFn func(ctx context.Context, owner models.OwnerFilter) (int64, error)
}

func (m *mockDocumentRepository) CreateDocument(ctx context.Context, document models.Document) (models.Document, error) {
	if m.createDocumentFn != nil {
		return m.createDocumentFn(ctx, document)
	}
	return document, nil
}

func (m *mockDocumentRepository) GetDocument(ctx context.Context, id int64) (models.Document, error) {
	if m.getDocumentFn != nil {
		return m.getDocumentFn(ctx, id)
	}
	return models.Document{}, nil
}

func (m *mockDocumentRepository) DeleteDocument(ctx context.Context, id int64) error {
	if m.deleteDocumentFn != nil {
		return m.deleteDocumentFn(ctx, id)
	}
	return nil
}

func (m *mockDocumentRepository) ListDocuments(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	if m.listDocumentsFn != nil {
		return m.listDocumentsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockDocumentRepository) CountDocuments(ctx context.Context, owner models.OwnerFilter) (int64, error) {
	if m.countDocumentsFn != nil {
		return m.countDocumentsFn(ctx, owner)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.RevenueRepository
// ─────────────────────────────────────────────

type mockRevenueRepository struct {
	createRevenueFn func(ctx context.Context, revenue models.Revenue) (models.Revenue, error)
	listRevenueFn   func(ctx context.Context, owner models.OwnerFilter) ([]models.Revenue, error)
	sumRevenueFn    func(ctx context.Context, owner models.OwnerFilter) (float64, error)
}

func (m *mockRevenueRepository) CreateRevenue(ctx context.Context, revenue models.Revenue) (models.Revenue, error) {
	if m.createRevenueFn != nil {
		return m.createRevenueFn(ctx, revenue)
	}
	return revenue, nil
}

func (m *mockRevenueRepository) ListRevenue(ctx context.Context, owner models.OwnerFilter) ([]models.Revenue, error) {
	if m.listRevenueFn != nil {
		return m.listRevenueFn(ctx, owner)
	}
	return nil, nil
}

func (m *mockRevenueRepository) SumRevenue(ctx context.Context, owner models.OwnerFilter) (float64, error) {
	if m.sumRevenueFn != nil {
		return m.sumRevenueFn(ctx, owner)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.MessageRepository
// ─────────────────────────────────────────────

type mockMessageRepository struct {
	createMessageFn func(ctx context.Context, message models.Message) (models.Message, error)
	getMessageFn    func(ctx context.Context, id int64) (models.Message, error)
	listMessagesFn  func(ctx context.Context) ([]models.Message, error)
}

func (m *mockMessageRepository) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	if m.createMessageFn != nil {
		return m.createMessageFn(ctx, message)
	}
	return message, nil
}

func (m *mockMessageRepository) GetMessage(ctx context.Context, id int64) (models.Message, error) {
	if m.getMessageFn != nil {
		return m.getMessageFn(ctx, id)
	}
	return models.Message{}, nil
}

func (m *mockMessageRepository) ListMessages(ctx context.Context) ([]models.Message, error) {
	if m.listMessagesFn != nil {
		return m.listMessagesFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: validators.Validator
// ─────────────────────────────────────────────

type mockValidator struct {
	validateFn func(ctx context.Context, i any, fields ...string) error
}

func (m *mockValidator) Validate(ctx context.Context, i any, fields ...string) error {
	if m.validateFn != nil {
		return m.validateFn(ctx, i, fields...)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: AttachmentService
// ─────────────────────────────────────────────

type mockAttachmentService struct {
	storeFn    func(ctx context.Context, area models.StorageArea, upload models.Upload) (string, error)
	retrieveFn func(ctx context.Context, area models.StorageArea, storedName string) (io.ReadCloser, error)

	deleted []string
}

func (m *mockAttachmentService) IsAllowed(area models.StorageArea, filename string) bool {
	return (&attachmentService{}).IsAllowed(area, filename)
}

func (m *mockAttachmentService) Store(ctx context.Context, area models.StorageArea, upload models.Upload) (string, error) {
	if m.storeFn != nil {
		return m.storeFn(ctx, area, upload)
	}
	return "stored_" + upload.Filename, nil
}

func (m *mockAttachmentService) Retrieve(ctx context.Context, area models.StorageArea, storedName string) (io.ReadCloser, error) {
	if m.retrieveFn != nil {
		return m.retrieveFn(ctx, area, storedName)
	}
	return io.NopCloser(strings.NewReader("")), nil
}

func (m *mockAttachmentService) Delete(ctx context.Context, area models.StorageArea, storedName string) {
	m.deleted = append(m.deleted, storedName)
}
