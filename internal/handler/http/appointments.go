// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

// listAppointments filters by the "date" parameter. A malformed date is
// ignored and the full listing is returned.
func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	appointments, err := h.services.AppointmentService.ListAppointments(r.Context(), actor, r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(appointments), http.StatusOK)
}

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var input models.AppointmentInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	appointment, err := h.services.AppointmentService.CreateAppointment(r.Context(), actor, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, appointment, http.StatusCreated)
}

func (h *Handler) updateAppointment(w http.ResponseWriter, r *http.Request) {
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

	var input models.AppointmentInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	appointment, err := h.services.AppointmentService.UpdateAppointment(r.Context(), actor, id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, appointment, http.StatusOK)
}

// deleteAppointment answers with the deleted appointment so that the caller
// can go back to its client.
func (h *Handler) deleteAppointment(w http.ResponseWriter, r *http.Request) {
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

	appointment, err := h.services.AppointmentService.DeleteAppointment(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, appointment, http.StatusOK)
}
