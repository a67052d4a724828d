// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

// listClients lists the visible clients, searched by the "q" parameter when
// present.
func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	clients, err := h.services.ClientService.SearchClients(r.Context(), actor, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(clients), http.StatusOK)
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var input models.ClientInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	client, err := h.services.ClientService.CreateClient(r.Context(), actor, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, client, http.StatusCreated)
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	detail, err := h.services.ClientService.GetClient(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	detail.Appointments = nonNil(detail.Appointments)
	detail.Documents = nonNil(detail.Documents)
	utils.WriteJSON(w, detail, http.StatusOK)
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var input models.ClientInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	client, err := h.services.ClientService.UpdateClient(r.Context(), actor, id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, client, http.StatusOK)
}

// nonNil makes empty listings encode as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
