// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter]
// for the server at cfg.ServerURL. A missing scheme defaults to http.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login posts the credentials to POST /api/auth/login and keeps the token
// from the response body.
func (h *httpServerAdapter) Login(ctx context.Context, username, password string) (models.User, error) {
	var response models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Username: username, Password: password}).
		SetResult(&response).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	h.SetToken(response.Token)
	h.logger.Debug().Str("username", response.User.Username).Msg("logged in")
	return response.User, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	if h.Token() == "" {
		return nil
	}

	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.Actor, error) {
	return execute[models.Actor](h.authedRequest(ctx), http.MethodGet, "/api/me")
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppInfo, error) {
	return execute[models.AppInfo](h.client.R().SetContext(ctx), http.MethodGet, "/api/version")
}

func (h *httpServerAdapter) Dashboard(ctx context.Context) (models.Dashboard, error) {
	return execute[models.Dashboard](h.authedRequest(ctx), http.MethodGet, "/api/dashboard")
}

func (h *httpServerAdapter) ListClients(ctx context.Context, query string) ([]models.Client, error) {
	req := h.authedRequest(ctx)
	if query != "" {
		req.SetQueryParam("q", query)
	}
	return execute[[]models.Client](req, http.MethodGet, "/api/clients")
}

func (h *httpServerAdapter) CreateClient(ctx context.Context, input models.ClientInput) (models.Client, error) {
	return execute[models.Client](h.authedRequest(ctx).SetBody(input), http.MethodPost, "/api/clients")
}

func (h *httpServerAdapter) GetClient(ctx context.Context, id int64) (models.ClientDetail, error) {
	return execute[models.ClientDetail](h.authedRequest(ctx), http.MethodGet, "/api/clients/"+idPath(id))
}

func (h *httpServerAdapter) ListAppointments(ctx context.Context, date string) ([]models.Appointment, error) {
	req := h.authedRequest(ctx)
	if date != "" {
		req.SetQueryParam("date", date)
	}
	return execute[[]models.Appointment](req, http.MethodGet, "/api/appointments")
}

func (h *httpServerAdapter) CreateAppointment(ctx context.Context, input models.AppointmentInput) (models.Appointment, error) {
	return execute[models.Appointment](h.authedRequest(ctx).SetBody(input), http.MethodPost, "/api/appointments")
}

func (h *httpServerAdapter) DeleteAppointment(ctx context.Context, id int64) error {
	_, err := execute[models.Appointment](h.authedRequest(ctx), http.MethodDelete, "/api/appointments/"+idPath(id))
	return err
}

func (h *httpServerAdapter) ListDocuments(ctx context.Context) ([]models.Document, error) {
	return execute[[]models.Document](h.authedRequest(ctx), http.MethodGet, "/api/documents")
}

// UploadDocument sends the file as the "file" part of a multipart form.
func (h *httpServerAdapter) UploadDocument(ctx context.Context, filename string, content io.Reader, clientID *int64) (models.Document, error) {
	req := h.authedRequest(ctx).SetFileReader("file", filename, content)
	if clientID != nil {
		req.SetFormData(map[string]string{"client_id": idPath(*clientID)})
	}
	return execute[models.Document](req, http.MethodPost, "/api/documents")
}

func (h *httpServerAdapter) DownloadDocument(ctx context.Context, id int64, w io.Writer) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetDoNotParseResponse(true).
		Get("/api/documents/" + idPath(id) + "/file")
	if err != nil {
		return "", fmt.Errorf("download request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() >= http.StatusMultipleChoices {
		notice, _ := io.ReadAll(body)
		return "", mapStatus(resp.StatusCode(), notice)
	}

	if _, err = io.Copy(w, body); err != nil {
		return "", fmt.Errorf("download copy: %w", err)
	}

	return attachmentName(resp.Header().Get("Content-Disposition")), nil
}

func (h *httpServerAdapter) DeleteDocument(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).Delete("/api/documents/" + idPath(id))
	if err != nil {
		return fmt.Errorf("delete document request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListRevenue(ctx context.Context) (models.RevenueSummary, error) {
	return execute[models.RevenueSummary](h.authedRequest(ctx), http.MethodGet, "/api/revenue")
}

func (h *httpServerAdapter) AddRevenue(ctx context.Context, input models.RevenueInput) (models.Revenue, error) {
	return execute[models.Revenue](h.authedRequest(ctx).SetBody(input), http.MethodPost, "/api/revenue")
}

func (h *httpServerAdapter) ListMessages(ctx context.Context) ([]models.Message, error) {
	return execute[[]models.Message](h.authedRequest(ctx), http.MethodGet, "/api/chat/messages")
}

func (h *httpServerAdapter) SendMessage(ctx context.Context, content string) (models.Message, error) {
	body := map[string]string{"content": content}
	return execute[models.Message](h.authedRequest(ctx).SetBody(body), http.MethodPost, "/api/chat/messages")
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	return execute[[]models.User](h.authedRequest(ctx), http.MethodGet, "/api/admin/users")
}

func (h *httpServerAdapter) CreateAgent(ctx context.Context, input models.AgentInput) (models.User, error) {
	return execute[models.User](h.authedRequest(ctx).SetBody(input), http.MethodPost, "/api/admin/users")
}

func (h *httpServerAdapter) DeleteAgent(ctx context.Context, id int64) (models.ReassignmentReport, error) {
	response, err := execute[models.DeleteAgentResponse](h.authedRequest(ctx), http.MethodDelete, "/api/admin/users/"+idPath(id))
	return response.Reassigned, err
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// execute sends req and decodes a 2xx JSON answer into T.
func execute[T any](req *resty.Request, method, path string) (T, error) {
	var result T

	resp, err := req.SetResult(&result).Execute(method, path)
	if err != nil {
		return result, fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return result, err
	}

	return result, nil
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}

func attachmentName(contentDisposition string) string {
	_, params, err := mime.ParseMediaType(contentDisposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
