// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mini-crm/internal/service"
	"github.com/MKhiriev/go-mini-crm/models"
)

func TestAdminRoutes_RejectAgents(t *testing.T) {
	called := false
	services := newTestServices()
	services.UserService = &mockUserService{
		listUsersFn: func(context.Context, models.Actor) ([]models.User, error) {
			called = true
			return nil, nil
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodGet, "/api/admin/users", "alice-token", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestListUsers(t *testing.T) {
	services := newTestServices()
	services.UserService = &mockUserService{
		listUsersFn: func(context.Context, models.Actor) ([]models.User, error) {
			return []models.User{
				{ID: 1, Username: "admin", Role: models.RoleAdministrator, PasswordHash: "$2a$hash"},
				{ID: 2, Username: "alice", Role: models.RoleAgent, PasswordHash: "$2a$hash"},
			}, nil
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodGet, "/api/admin/users", "admin-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "$2a$hash")
	var users []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestCreateAgent(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "duplicate username", err: service.ErrUsernameTaken, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			services.UserService = &mockUserService{
				createAgentFn: func(_ context.Context, _ models.Actor, input models.AgentInput) (models.User, error) {
					assert.Equal(t, "carol", input.Username)
					if tt.err != nil {
						return models.User{}, tt.err
					}
					return models.User{ID: 4, Username: input.Username, Role: models.RoleAgent}, nil
				},
			}
			router := newTestRouter(t, services)

			rec := doRequest(t, router, http.MethodPost, "/api/admin/users", "admin-token",
				strings.NewReader(`{"username":"carol","password":"carol-pass"}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestEditAgent_Administrator(t *testing.T) {
	services := newTestServices()
	services.UserService = &mockUserService{
		editAgentFn: func(context.Context, models.Actor, int64, models.AgentUpdate) (models.User, error) {
			return models.User{}, service.ErrAdministratorNotEditable
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodPut, "/api/admin/users/1", "admin-token", strings.NewReader(`{"username":"root"}`))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteAgent_ReportsReassignment(t *testing.T) {
	services := newTestServices()
	services.UserService = &mockUserService{
		deleteAgentFn: func(_ context.Context, actor models.Actor, id int64) (models.ReassignmentReport, error) {
			assert.Equal(t, adminActor, actor)
			return models.ReassignmentReport{DeletedUserID: id, FallbackUserID: 1, Clients: 3, Documents: 1}, nil
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodDelete, "/api/admin/users/2", "admin-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var response models.DeleteAgentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(2), response.Reassigned.DeletedUserID)
	assert.Equal(t, int64(3), response.Reassigned.Clients)
}

func TestDeleteAgent_AdministratorIsConflict(t *testing.T) {
	services := newTestServices()
	services.UserService = &mockUserService{
		deleteAgentFn: func(context.Context, models.Actor, int64) (models.ReassignmentReport, error) {
			return models.ReassignmentReport{}, service.ErrAdministratorNotDeletable
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodDelete, "/api/admin/users/1", "admin-token", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
