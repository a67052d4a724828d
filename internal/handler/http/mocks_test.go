// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/service"
	"github.com/MKhiriev/go-mini-crm/models"
)

var (
	adminActor = models.Actor{UserID: 1, Username: "admin", Role: models.RoleAdministrator}
	aliceActor = models.Actor{UserID: 2, Username: "alice", Role: models.RoleAgent}
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

// mockAuthService resolves "admin-token" and "alice-token" to fixed actors
// unless a method field overrides it.
type mockAuthService struct {
	authenticateFn   func(ctx context.Context, username, password string) (models.User, error)
	createTokenFn    func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn     func(ctx context.Context, tokenString string) (models.Token, error)
	resolveActorFn   func(ctx context.Context, token models.Token) (models.Actor, error)
	logoutFn         func(ctx context.Context, token models.Token) error
	changePasswordFn func(ctx context.Context, actor models.Actor, change models.PasswordChange) error
}

func (m *mockAuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, username, password)
	}
	return models.User{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed.jwt.token", UserID: user.ID}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	switch tokenString {
	case "admin-token":
		return models.Token{SignedString: tokenString, UserID: 1, ID: "jti-admin"}, nil
	case "alice-token":
		return models.Token{SignedString: tokenString, UserID: 2, ID: "jti-alice"}, nil
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

func (m *mockAuthService) ResolveActor(ctx context.Context, token models.Token) (models.Actor, error) {
	if m.resolveActorFn != nil {
		return m.resolveActorFn(ctx, token)
	}
	if token.UserID == 1 {
		return adminActor, nil
	}
	return aliceActor, nil
}

func (m *mockAuthService) Logout(ctx context.Context, token models.Token) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, actor models.Actor, change models.PasswordChange) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, actor, change)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	listUsersFn   func(ctx context.Context, actor models.Actor) ([]models.User, error)
	createAgentFn func(ctx context.Context, actor models.Actor, input models.AgentInput) (models.User, error)
	editAgentFn   func(ctx context.Context, actor models.Actor, id int64, input models.AgentUpdate) (models.User, error)
	deleteAgentFn func(ctx context.Context, actor models.Actor, id int64) (models.ReassignmentReport, error)
}

func (m *mockUserService) ListUsers(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, actor)
	}
	return nil, nil
}

func (m *mockUserService) CreateAgent(ctx context.Context, actor models.Actor, input models.AgentInput) (models.User, error) {
	if m.createAgentFn != nil {
		return m.createAgentFn(ctx, actor, input)
	}
	return models.User{Username: input.Username, Role: models.RoleAgent}, nil
}

func (m *mockUserService) EditAgent(ctx context.Context, actor models.Actor, id int64, input models.AgentUpdate) (models.User, error) {
	if m.editAgentFn != nil {
		return m.editAgentFn(ctx, actor, id, input)
	}
	return models.User{ID: id, Username: input.Username, Role: models.RoleAgent}, nil
}

func (m *mockUserService) DeleteAgent(ctx context.Context, actor models.Actor, id int64) (models.ReassignmentReport, error) {
	if m.deleteAgentFn != nil {
		return m.deleteAgentFn(ctx, actor, id)
	}
	return models.ReassignmentReport{DeletedUserID: id, FallbackUserID: 1}, nil
}

func (m *mockUserService) EnsureAdministrator(context.Context, string, string) (bool, error) {
	return false, nil
}

// ─────────────────────────────────────────────
// Mock: service.ClientService
// ─────────────────────────────────────────────

type mockClientService struct {
	searchClientsFn func(ctx context.Context, actor models.Actor, query string) ([]models.Client, error)
	createClientFn  func(ctx context.Context, actor models.Actor, input models.ClientInput) (models.Client, error)
	getClientFn     func(ctx context.Context, actor models.Actor, id int64) (models.ClientDetail, error)
	updateClientFn  func(ctx context.Context, actor models.Actor, id int64, input models.ClientInput) (models.Client, error)
}

func (m *mockClientService) ListClients(ctx context.Context, actor models.Actor) ([]models.Client, error) {
	return m.SearchClients(ctx, actor, "")
}

func (m *mockClientService) SearchClients(ctx context.Context, actor models.Actor, query string) ([]models.Client, error) {
	if m.searchClientsFn != nil {
		return m.searchClientsFn(ctx, actor, query)
	}
	return nil, nil
}

func (m *mockClientService) CreateClient(ctx context.Context, actor models.Actor, input models.ClientInput) (models.Client, error) {
	if m.createClientFn != nil {
		return m.createClientFn(ctx, actor, input)
	}
	return models.Client{ID: 1, Name: input.Name, UserID: actor.UserID}, nil
}

func (m *mockClientService) GetClient(ctx context.Context, actor models.Actor, id int64) (models.ClientDetail, error) {
	if m.getClientFn != nil {
		return m.getClientFn(ctx, actor, id)
	}
	return models.ClientDetail{Client: models.Client{ID: id}}, nil
}

func (m *mockClientService) UpdateClient(ctx context.Context, actor models.Actor, id int64, input models.ClientInput) (models.Client, error) {
	if m.updateClientFn != nil {
		return m.updateClientFn(ctx, actor, id, input)
	}
	return models.Client{ID: id, Name: input.Name}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AppointmentService
// ─────────────────────────────────────────────

type mockAppointmentService struct {
	listAppointmentsFn  func(ctx context.Context, actor models.Actor, rawDate string) ([]models.Appointment, error)
	createAppointmentFn func(ctx context.Context, actor models.Actor, input models.AppointmentInput) (models.Appointment, error)
	updateAppointmentFn func(ctx context.Context, actor models.Actor, id int64, input models.AppointmentInput) (models.Appointment, error)
	deleteAppointmentFn func(ctx context.Context, actor models.Actor, id int64) (models.Appointment, error)
}

func (m *mockAppointmentService) ListAppointments(ctx context.Context, actor models.Actor, rawDate string) ([]models.Appointment, error) {
	if m.listAppointmentsFn != nil {
		return m.listAppointmentsFn(ctx, actor, rawDate)
	}
	return nil, nil
}

func (m *mockAppointmentService) CreateAppointment(ctx context.Context, actor models.Actor, input models.AppointmentInput) (models.Appointment, error) {
	if m.createAppointmentFn != nil {
		return m.createAppointmentFn(ctx, actor, input)
	}
	return models.Appointment{ID: 1, Title: input.Title}, nil
}

func (m *mockAppointmentService) UpdateAppointment(ctx context.Context, actor models.Actor, id int64, input models.AppointmentInput) (models.Appointment, error) {
	if m.updateAppointmentFn != nil {
		return m.updateAppointmentFn(ctx, actor, id, input)
	}
	return models.Appointment{ID: id, Title: input.Title}, nil
}

func (m *mockAppointmentService) DeleteAppointment(ctx context.Context, actor models.Actor, id int64) (models.Appointment, error) {
	if m.deleteAppointmentFn != nil {
		return m.deleteAppointmentFn(ctx, actor, id)
	}
	return models.Appointment{ID: id}, nil
}

// ─────────────────────────────────────────────
// Mock: service.DocumentService
// ─────────────────────────────────────────────

type mockDocumentService struct {
	listDocumentsFn    func(ctx context.Context, actor models.Actor) ([]models.Document, error)
	uploadDocumentFn   func(ctx context.Context, actor models.Actor, upload models.Upload, clientID *int64) (models.Document, error)
	downloadDocumentFn func(ctx context.Context, actor models.Actor, id int64) (models.FileDownload, error)
	deleteDocumentFn   func(ctx context.Context, actor models.Actor, id int64) error
}

func (m *mockDocumentService) ListDocuments(ctx context.Context, actor models.Actor) ([]models.Document, error) {
	if m.listDocumentsFn != nil {
		return m.listDocumentsFn(ctx, actor)
	}
	return nil, nil
}

func (m *mockDocumentService) UploadDocument(ctx context.Context, actor models.Actor, upload models.Upload, clientID *int64) (models.Document, error) {
	if m.uploadDocumentFn != nil {
		return m.uploadDocumentFn(ctx, actor, upload, clientID)
	}
	return models.Document{ID: 1, OriginalName: upload.Filename}, nil
}

func (m *mockDocumentService) DownloadDocument(ctx context.Context, actor models.Actor, id int64) (models.FileDownload, error) {
	if m.downloadDocumentFn != nil {
		return m.downloadDocumentFn(ctx, actor, id)
	}
	return models.FileDownload{Name: "file.pdf", Content: io.NopCloser(strings.NewReader("%PDF"))}, nil
}

func (m *mockDocumentService) DeleteDocument(ctx context.Context, actor models.Actor, id int64) error {
	if m.deleteDocumentFn != nil {
		return m.deleteDocumentFn(ctx, actor, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.RevenueService
// ─────────────────────────────────────────────

type mockRevenueService struct {
	listRevenueFn func(ctx context.Context, actor models.Actor) (models.RevenueSummary, error)
	addRevenueFn  func(ctx context.Context, actor models.Actor, input models.RevenueInput) (models.Revenue, error)
}

func (m *mockRevenueService) ListRevenue(ctx context.Context, actor models.Actor) (models.RevenueSummary, error) {
	if m.listRevenueFn != nil {
		return m.listRevenueFn(ctx, actor)
	}
	return models.RevenueSummary{}, nil
}

func (m *mockRevenueService) AddRevenue(ctx context.Context, actor models.Actor, input models.RevenueInput) (models.Revenue, error) {
	if m.addRevenueFn != nil {
		return m.addRevenueFn(ctx, actor, input)
	}
	return models.Revenue{ID: 1, Commercial: actor.Username, Amount: *input.Amount, Date: input.Date}, nil
}

func (m *mockRevenueService) SumRevenue(context.Context, models.Actor) (float64, error) {
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: service.ChatService
// ─────────────────────────────────────────────

type mockChatService struct {
	listMessagesFn       func(ctx context.Context) ([]models.Message, error)
	sendMessageFn        func(ctx context.Context, actor models.Actor, content string, attachment *models.Upload) (models.Message, error)
	downloadAttachmentFn func(ctx context.Context, messageID int64) (models.FileDownload, error)
}

func (m *mockChatService) ListMessages(ctx context.Context) ([]models.Message, error) {
	if m.listMessagesFn != nil {
		return m.listMessagesFn(ctx)
	}
	return nil, nil
}

func (m *mockChatService) SendMessage(ctx context.Context, actor models.Actor, content string, attachment *models.Upload) (models.Message, error) {
	if m.sendMessageFn != nil {
		return m.sendMessageFn(ctx, actor, content, attachment)
	}
	return models.Message{ID: 1, UserID: actor.UserID, Content: content}, nil
}

func (m *mockChatService) DownloadAttachment(ctx context.Context, messageID int64) (models.FileDownload, error) {
	if m.downloadAttachmentFn != nil {
		return m.downloadAttachmentFn(ctx, messageID)
	}
	return models.FileDownload{}, service.ErrAttachmentNotFound
}

// ─────────────────────────────────────────────
// Mock: service.DashboardService / service.AppInfoService
// ─────────────────────────────────────────────

type mockDashboardService struct {
	getDashboardFn func(ctx context.Context, actor models.Actor) (models.Dashboard, error)
}

func (m *mockDashboardService) GetDashboard(ctx context.Context, actor models.Actor) (models.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(ctx, actor)
	}
	return models.Dashboard{}, nil
}

type mockAppInfoService struct {
	info models.AppInfo
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.info.Version
}

func (m *mockAppInfoService) GetAppInfo(context.Context) models.AppInfo {
	return m.info
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestServices returns services backed by default mocks. Tests override
// single services before building the router.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService:        &mockAuthService{},
		UserService:        &mockUserService{},
		ClientService:      &mockClientService{},
		AppointmentService: &mockAppointmentService{},
		DocumentService:    &mockDocumentService{},
		RevenueService:     &mockRevenueService{},
		ChatService:        &mockChatService{},
		DashboardService:   &mockDashboardService{},
		AppInfoService:     &mockAppInfoService{info: models.AppInfo{Version: "1.2.3", BuildDate: "N/A", BuildCommit: "N/A"}},
	}
}

func newTestRouter(t *testing.T, services *service.Services) http.Handler {
	t.Helper()
	return NewHandler(services, config.Server{}, logger.Nop()).Init()
}

// doRequest sends a request through router, authenticated with token when
// it is not empty.
func doRequest(t *testing.T, router http.Handler, method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}
