// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	documents, err := h.services.DocumentService.ListDocuments(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(documents), http.StatusOK)
}

// uploadDocument takes a multipart form with a "file" part and an optional
// "client_id" field.
func (h *Handler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.parseMultipart(w, r); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clientID, err := optionalID(r.FormValue("client_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	upload, closeFile, err := formUpload(r, "file")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer closeFile()

	document, err := h.services.DocumentService.UploadDocument(r.Context(), actor, upload, clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, document, http.StatusCreated)
}

func (h *Handler) downloadDocument(w http.ResponseWriter, r *http.Request) {
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

	download, err := h.services.DocumentService.DownloadDocument(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeFile(w, r, download)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
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

	if err := h.services.DocumentService.DeleteDocument(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return nil
}

// formUpload returns the named file part. A missing part yields an empty
// upload, which the services treat as "no file".
func formUpload(r *http.Request, field string) (models.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return models.Upload{}, func() {}, nil
	}
	if err != nil {
		return models.Upload{}, nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	return models.Upload{Filename: header.Filename, Content: file}, func() { file.Close() }, nil
}

func optionalID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidClientID
	}
	return &id, nil
}
