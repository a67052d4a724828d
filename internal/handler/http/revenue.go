// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

func (h *Handler) listRevenue(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	summary, err := h.services.RevenueService.ListRevenue(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	summary.Entries = nonNil(summary.Entries)
	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) addRevenue(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var input models.RevenueInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	revenue, err := h.services.RevenueService.AddRevenue(r.Context(), actor, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, revenue, http.StatusCreated)
}
