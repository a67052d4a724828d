// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/utils"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dashboard, err := h.services.DashboardService.GetDashboard(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, dashboard, http.StatusOK)
}
