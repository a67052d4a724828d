// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/service"
	"github.com/MKhiriev/go-mini-crm/internal/utils"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is matched in order. Conflict precedes Forbidden so that
// refusing to delete an administrator reads as a conflict.
var errorStatuses = []errorStatus{
	{target: ErrInvalidJSON, status: http.StatusBadRequest},
	{target: ErrInvalidID, status: http.StatusBadRequest},
	{target: ErrInvalidForm, status: http.StatusBadRequest},
	{target: ErrInvalidClientID, status: http.StatusBadRequest},
	{target: service.ErrValidation, status: http.StatusBadRequest},
	{target: ErrMissingActor, status: http.StatusUnauthorized},
	{target: service.ErrUnauthenticated, status: http.StatusUnauthorized},
	{target: service.ErrConflict, status: http.StatusConflict},
	{target: service.ErrForbidden, status: http.StatusForbidden},
	{target: service.ErrNotFound, status: http.StatusNotFound},
}

func statusFromError(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	for _, es := range errorStatuses {
		if errors.Is(err, es.target) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError answers with the status of err. Server errors get a
// generic notice; the cause only goes to the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status == http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	log.Debug().Err(err).Int("status", status).Msg("request rejected")
	if status == http.StatusRequestEntityTooLarge {
		utils.WriteError(w, "uploaded file is too large", status)
		return
	}
	utils.WriteError(w, err.Error(), status)
}
