// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

// maxJSONBodySize bounds JSON request bodies.
const maxJSONBodySize = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func actorFromRequest(r *http.Request) (models.Actor, error) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		return models.Actor{}, ErrMissingActor
	}
	return actor, nil
}

// writeFile streams a download as an attachment named after the original
// upload.
func writeFile(w http.ResponseWriter, r *http.Request, download models.FileDownload) {
	defer download.Content.Close()

	contentType := mime.TypeByExtension(path.Ext(download.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": download.Name}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, download.Content); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeFile").Msg("failed to stream file")
	}
}
