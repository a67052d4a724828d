// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"mime"
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.services.ChatService.ListMessages(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(messages), http.StatusOK)
}

// sendMessage accepts a multipart form with "content" and an optional "file"
// part, or a JSON body for text-only messages.
func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var (
		content    string
		attachment *models.Upload
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var request sendMessageRequest
		if err := decodeJSON(w, r, &request); err != nil {
			writeServiceError(w, r, err)
			return
		}
		content = request.Content
	} else {
		if err := h.parseMultipart(w, r); err != nil {
			writeServiceError(w, r, err)
			return
		}
		content = r.FormValue("content")

		upload, closeFile, err := formUpload(r, "file")
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		defer closeFile()

		if upload.Content != nil {
			attachment = &upload
		}
	}

	message, err := h.services.ChatService.SendMessage(r.Context(), actor, content, attachment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, message, http.StatusCreated)
}

func (h *Handler) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	download, err := h.services.ChatService.DownloadAttachment(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeFile(w, r, download)
}
