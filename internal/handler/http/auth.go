// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, request.Username, request.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Debug().Int64("user_id", user.ID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{Token: token.SignedString, User: user}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, ErrMissingActor)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, actor, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var change models.PasswordChange
	if err := decodeJSON(w, r, &change); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.services.AuthService.ChangePassword(r.Context(), actor, change); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
