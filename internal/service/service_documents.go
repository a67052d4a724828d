// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/policy"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/models"
)

type documentService struct {
	documentRepository store.DocumentRepository
	clientRepository   store.ClientRepository
	attachments        AttachmentService

	logger *logger.Logger
}

func NewDocumentService(
	documentRepository store.DocumentRepository,
	clientRepository store.ClientRepository,
	attachments AttachmentService,
	logger *logger.Logger,
) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		clientRepository:   clientRepository,
		attachments:        attachments,
		logger:             logger,
	}
}

func (d *documentService) ListDocuments(ctx context.Context, actor models.Actor) ([]models.Document, error) {
	documents, err := d.documentRepository.ListDocuments(ctx, models.DocumentFilter{Owner: policy.OwnerFilter(actor)})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*documentService.ListDocuments").Msg("failed to list documents")
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return documents, nil
}

// UploadDocument validates the upload before any byte is written. When the
// record cannot be inserted the stored file is removed again.
func (d *documentService) UploadDocument(ctx context.Context, actor models.Actor, upload models.Upload, clientID *int64) (models.Document, error) {
	log := logger.FromContext(ctx)

	originalName := OriginalFileName(upload.Filename)
	if originalName == "" || upload.Content == nil {
		return models.Document{}, ErrEmptyFilename
	}
	if !d.attachments.IsAllowed(models.AreaDocuments, originalName) {
		return models.Document{}, ErrUnsupportedFileType
	}

	if clientID != nil {
		client, err := d.clientRepository.GetClient(ctx, *clientID)
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Document{}, ErrClientNotFound
		}
		if err != nil {
			return models.Document{}, fmt.Errorf("failed to load linked client: %w", err)
		}
		if !policy.Authorize(actor, client.UserID, policy.OperationRead) {
			return models.Document{}, ErrRecordForbidden
		}
	}

	storedName, err := d.attachments.Store(ctx, models.AreaDocuments, models.Upload{Filename: originalName, Content: upload.Content})
	if err != nil {
		return models.Document{}, err
	}

	document, err := d.documentRepository.CreateDocument(ctx, models.Document{
		StoredName:   storedName,
		OriginalName: originalName,
		UploadedAt:   time.Now().UTC(),
		ClientID:     clientID,
		UserID:       actor.UserID,
	})
	if err != nil {
		d.attachments.Delete(ctx, models.AreaDocuments, storedName)
		if errors.Is(err, store.ErrReferencedRecordNotFound) {
			return models.Document{}, ErrClientNotFound
		}
		log.Err(err).Str("func", "*documentService.UploadDocument").Int64("user_id", actor.UserID).Msg("failed to create document")
		return models.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	log.Info().Int64("document_id", document.ID).Str("stored_name", storedName).Msg("document uploaded")
	return document, nil
}

func (d *documentService) DownloadDocument(ctx context.Context, actor models.Actor, id int64) (models.FileDownload, error) {
	document, err := d.authorizedDocument(ctx, actor, id, policy.OperationRead)
	if err != nil {
		return models.FileDownload{}, err
	}

	content, err := d.attachments.Retrieve(ctx, models.AreaDocuments, document.StoredName)
	if err != nil {
		return models.FileDownload{}, err
	}

	return models.FileDownload{Name: document.OriginalName, Content: content}, nil
}

// DeleteDocument removes the record first; the file goes best-effort.
func (d *documentService) DeleteDocument(ctx context.Context, actor models.Actor, id int64) error {
	document, err := d.authorizedDocument(ctx, actor, id, policy.OperationDelete)
	if err != nil {
		return err
	}

	err = d.documentRepository.DeleteDocument(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return ErrDocumentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*documentService.DeleteDocument").Int64("document_id", id).Msg("failed to delete document")
		return fmt.Errorf("failed to delete document: %w", err)
	}

	d.attachments.Delete(ctx, models.AreaDocuments, document.StoredName)
	return nil
}

func (d *documentService) authorizedDocument(ctx context.Context, actor models.Actor, id int64, op policy.Operation) (models.Document, error) {
	document, err := d.documentRepository.GetDocument(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Document{}, ErrDocumentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*documentService.authorizedDocument").Int64("document_id", id).Msg("failed to load document")
		return models.Document{}, fmt.Errorf("failed to load document: %w", err)
	}

	if !policy.Authorize(actor, document.UserID, op) {
		return models.Document{}, ErrRecordForbidden
	}

	return document, nil
}
