// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/models"
)

const (
	// maxStoredBaseLength bounds the sanitized original name kept in a
	// stored name.
	maxStoredBaseLength = 100

	storeAttempts = 3
)

// documentExtensions are the extensions accepted in the documents area.
// The chat area accepts any file.
var documentExtensions = map[string]struct{}{
	"pdf": {},
}

type attachmentService struct {
	files store.FileStorage

	now func() time.Time

	logger *logger.Logger
}

func NewAttachmentService(files store.FileStorage, logger *logger.Logger) AttachmentService {
	return &attachmentService{
		files:  files,
		now:    time.Now,
		logger: logger,
	}
}

// IsAllowed reports whether filename may be stored in area. Documents need a
// dot and an accepted extension after the last one, compared case-insensitively.
func (a *attachmentService) IsAllowed(area models.StorageArea, filename string) bool {
	if area != models.AreaDocuments {
		return true
	}

	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return false
	}

	_, ok := documentExtensions[strings.ToLower(filename[dot+1:])]
	return ok
}

// Store writes the upload under a new name of the form
// <unix seconds>_<random hex>_<sanitized base name> and returns that name.
func (a *attachmentService) Store(ctx context.Context, area models.StorageArea, upload models.Upload) (string, error) {
	log := logger.FromContext(ctx)

	base := sanitizeFileName(OriginalFileName(upload.Filename))

	var err error
	for range storeAttempts {
		name := strconv.FormatInt(a.now().Unix(), 10) + "_" + utils.RandomSuffix(8) + "_" + base

		err = a.files.Save(ctx, area, name, upload.Content)
		if err == nil {
			log.Debug().Str("area", string(area)).Str("stored_name", name).Msg("file stored")
			return name, nil
		}
		if !errors.Is(err, store.ErrFileExists) {
			break
		}
	}

	log.Err(err).Str("func", "*attachmentService.Store").Str("area", string(area)).Msg("failed to store file")
	return "", fmt.Errorf("failed to store file: %w", err)
}

func (a *attachmentService) Retrieve(ctx context.Context, area models.StorageArea, storedName string) (io.ReadCloser, error) {
	content, err := a.files.Open(ctx, area, storedName)
	if errors.Is(err, store.ErrFileNotFound) || errors.Is(err, store.ErrInvalidFileName) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*attachmentService.Retrieve").Str("area", string(area)).Str("stored_name", storedName).Msg("failed to open file")
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return content, nil
}

func (a *attachmentService) Delete(ctx context.Context, area models.StorageArea, storedName string) {
	if err := a.files.Remove(ctx, area, storedName); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("area", string(area)).Str("stored_name", storedName).Msg("file was not deleted")
	}
}

// OriginalFileName strips any client-side directory from an uploaded
// filename. Both slash styles are treated as separators.
func OriginalFileName(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// sanitizeFileName keeps letters, digits, dot, dash and underscore. The
// extension survives truncation.
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	clean := strings.Trim(b.String(), ".")
	if clean == "" {
		return "file"
	}

	if len(clean) > maxStoredBaseLength {
		ext := path.Ext(clean)
		if len(ext) >= maxStoredBaseLength {
			ext = ""
		}
		clean = clean[:maxStoredBaseLength-len(ext)] + ext
	}

	return clean
}
