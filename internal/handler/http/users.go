// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(users), http.StatusOK)
}

func (h *Handler) createAgent(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var input models.AgentInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.services.UserService.CreateAgent(r.Context(), actor, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) editAgent(w http.ResponseWriter, r *http.Request) {
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

	var input models.AgentUpdate
	if err := decodeJSON(w, r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.services.UserService.EditAgent(r.Context(), actor, id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// deleteAgent reports how many records were handed to the fallback
// administrator.
func (h *Handler) deleteAgent(w http.ResponseWriter, r *http.Request) {
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

	report, err := h.services.UserService.DeleteAgent(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DeleteAgentResponse{Reassigned: report}, http.StatusOK)
}
