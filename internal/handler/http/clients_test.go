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

func TestListClients_PassesSearchQuery(t *testing.T) {
	services := newTestServices()
	services.ClientService = &mockClientService{
		searchClientsFn: func(_ context.Context, actor models.Actor, query string) ([]models.Client, error) {
			assert.Equal(t, aliceActor, actor)
			assert.Equal(t, "acme corp", query)
			return []models.Client{{ID: 10, Name: "Acme Corp", UserID: 2}}, nil
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodGet, "/api/clients?q=acme+corp", "alice-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var clients []models.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Corp", clients[0].Name)
}

func TestListClients_EmptyIsArray(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	rec := doRequest(t, router, http.MethodGet, "/api/clients", "alice-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateClient(t *testing.T) {
	services := newTestServices()
	services.ClientService = &mockClientService{
		createClientFn: func(_ context.Context, actor models.Actor, input models.ClientInput) (models.Client, error) {
			assert.Equal(t, "Acme", input.Name)
			assert.Equal(t, "Alice", input.Commercial)
			return models.Client{ID: 11, Name: input.Name, Commercial: input.Commercial, UserID: actor.UserID}, nil
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodPost, "/api/clients", "alice-token",
		strings.NewReader(`{"name":"Acme","commercial":"Alice"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var client models.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))
	assert.Equal(t, int64(11), client.ID)
	assert.Equal(t, int64(2), client.UserID)
}

func TestGetClient(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "visible", target: "/api/clients/10", wantStatus: http.StatusOK},
		{name: "other owner", target: "/api/clients/10", err: service.ErrRecordForbidden, wantStatus: http.StatusForbidden},
		{name: "missing", target: "/api/clients/10", err: service.ErrClientNotFound, wantStatus: http.StatusNotFound},
		{name: "bad id", target: "/api/clients/abc", wantStatus: http.StatusBadRequest},
		{name: "zero id", target: "/api/clients/0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			services.ClientService = &mockClientService{
				getClientFn: func(_ context.Context, _ models.Actor, id int64) (models.ClientDetail, error) {
					assert.Equal(t, int64(10), id)
					if tt.err != nil {
						return models.ClientDetail{}, tt.err
					}
					return models.ClientDetail{Client: models.Client{ID: id, Name: "Acme"}}, nil
				},
			}
			router := newTestRouter(t, services)

			rec := doRequest(t, router, http.MethodGet, tt.target, "alice-token", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t,
					`{"client":{"id":10,"name":"Acme","email":"","phone":"","address":"","notes":"","commercial":"","status":"","user_id":0},"appointments":[],"documents":[]}`,
					rec.Body.String())
			}
		})
	}
}

func TestUpdateClient_ValidationError(t *testing.T) {
	services := newTestServices()
	services.ClientService = &mockClientService{
		updateClientFn: func(context.Context, models.Actor, int64, models.ClientInput) (models.Client, error) {
			return models.Client{}, service.ErrValidation
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodPut, "/api/clients/10", "alice-token", strings.NewReader(`{"name":""}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
