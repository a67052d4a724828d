// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/models"
)

func newTestDocumentService(documents *mockDocumentRepository, clients *mockClientRepository, attachments *mockAttachmentService) DocumentService {
	return NewDocumentService(documents, clients, attachments, logger.Nop())
}

func pdfUpload(name string) models.Upload {
	return models.Upload{Filename: name, Content: strings.NewReader("%PDF-1.7")}
}

// ─────────────────────────────────────────────
// Upload
// ─────────────────────────────────────────────

func TestDocumentService_UploadDocument(t *testing.T) {
	var created models.Document
	documents := &mockDocumentRepository{
		createDocumentFn: func(_ context.Context, d models.Document) (models.Document, error) {
			created = d
			d.ID = 8
			return d, nil
		},
	}
	svc := newTestDocumentService(documents, &mockClientRepository{getClientFn: aliceClient}, &mockAttachmentService{})

	document, err := svc.UploadDocument(context.Background(), aliceActor, pdfUpload(`C:\scans\Contract.PDF`), int64Ref(10))

	require.NoError(t, err)
	assert.Equal(t, int64(8), document.ID)
	assert.Equal(t, "Contract.PDF", created.OriginalName)
	assert.Equal(t, "stored_Contract.PDF", created.StoredName)
	assert.Equal(t, int64(2), created.UserID)
	assert.Equal(t, "UTC", created.UploadedAt.Location().String())
	require.NotNil(t, created.ClientID)
}

// Rejected uploads never reach the storage.
func TestDocumentService_UploadDocument_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		actor    models.Actor
		upload   models.Upload
		clientID *int64
		wantErr  error
	}{
		{name: "not a pdf", actor: aliceActor, upload: pdfUpload("notes.docx"), wantErr: ErrUnsupportedFileType},
		{name: "no extension", actor: aliceActor, upload: pdfUpload("pdf"), wantErr: ErrUnsupportedFileType},
		{name: "no file", actor: aliceActor, upload: models.Upload{}, wantErr: ErrEmptyFilename},
		{name: "foreign client", actor: bobActor, upload: pdfUpload("a.pdf"), clientID: int64Ref(10), wantErr: ErrRecordForbidden},
		{name: "unknown client", actor: aliceActor, upload: pdfUpload("a.pdf"), clientID: int64Ref(404), wantErr: ErrClientNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stored := false
			attachments := &mockAttachmentService{
				storeFn: func(context.Context, models.StorageArea, models.Upload) (string, error) {
					stored = true
					return "x", nil
				},
			}
			clients := &mockClientRepository{
				getClientFn: func(ctx context.Context, id int64) (models.Client, error) {
					if id == 404 {
						return models.Client{}, store.ErrRecordNotFound
					}
					return aliceClient(ctx, id)
				},
			}
			svc := newTestDocumentService(&mockDocumentRepository{}, clients, attachments)

			_, err := svc.UploadDocument(context.Background(), tc.actor, tc.upload, tc.clientID)

			require.ErrorIs(t, err, tc.wantErr)
			assert.False(t, stored)
		})
	}
}

func TestDocumentService_UploadDocument_RemovesFileWhenInsertFails(t *testing.T) {
	attachments := &mockAttachmentService{}
	documents := &mockDocumentRepository{
		createDocumentFn: func(context.Context, models.Document) (models.Document, error) {
			return models.Document{}, errStorage
		},
	}
	svc := newTestDocumentService(documents, &mockClientRepository{}, attachments)

	_, err := svc.UploadDocument(context.Background(), aliceActor, pdfUpload("a.pdf"), nil)

	require.ErrorIs(t, err, errStorage)
	assert.Equal(t, []string{"stored_a.pdf"}, attachments.deleted)
}

// ─────────────────────────────────────────────
// Download / Delete
// ─────────────────────────────────────────────

func aliceDocument(context.Context, int64) (models.Document, error) {
	return models.Document{ID: 8, StoredName: "1700000000_abcd1234_a.pdf", OriginalName: "a.pdf", UserID: 2}, nil
}

func TestDocumentService_DownloadDocument(t *testing.T) {
	attachments := &mockAttachmentService{
		retrieveFn: func(_ context.Context, area models.StorageArea, name string) (io.ReadCloser, error) {
			assert.Equal(t, models.AreaDocuments, area)
			assert.Equal(t, "1700000000_abcd1234_a.pdf", name)
			return io.NopCloser(strings.NewReader("%PDF")), nil
		},
	}
	svc := newTestDocumentService(&mockDocumentRepository{getDocumentFn: aliceDocument}, &mockClientRepository{}, attachments)
	ctx := context.Background()

	_, err := svc.DownloadDocument(ctx, bobActor, 8)
	require.ErrorIs(t, err, ErrRecordForbidden)

	download, err := svc.DownloadDocument(ctx, aliceActor, 8)
	require.NoError(t, err)
	defer download.Content.Close()
	assert.Equal(t, "a.pdf", download.Name)
}

func TestDocumentService_DownloadDocument_MissingFile(t *testing.T) {
	attachments := &mockAttachmentService{
		retrieveFn: func(context.Context, models.StorageArea, string) (io.ReadCloser, error) {
			return nil, ErrFileNotFound
		},
	}
	svc := newTestDocumentService(&mockDocumentRepository{getDocumentFn: aliceDocument}, &mockClientRepository{}, attachments)

	_, err := svc.DownloadDocument(context.Background(), adminActor, 8)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	attachments := &mockAttachmentService{}
	deleted := false
	documents := &mockDocumentRepository{
		getDocumentFn: aliceDocument,
		deleteDocumentFn: func(context.Context, int64) error {
			deleted = true
			return nil
		},
	}
	svc := newTestDocumentService(documents, &mockClientRepository{}, attachments)

	require.NoError(t, svc.DeleteDocument(context.Background(), adminActor, 8))
	assert.True(t, deleted)
	assert.Equal(t, []string{"1700000000_abcd1234_a.pdf"}, attachments.deleted)
}

func TestDocumentService_DeleteDocument_RecordFailureKeepsFile(t *testing.T) {
	attachments := &mockAttachmentService{}
	documents := &mockDocumentRepository{
		getDocumentFn:    aliceDocument,
		deleteDocumentFn: func(context.Context, int64) error { return errStorage },
	}
	svc := newTestDocumentService(documents, &mockClientRepository{}, attachments)

	err := svc.DeleteDocument(context.Background(), aliceActor, 8)

	require.ErrorIs(t, err, errStorage)
	assert.Empty(t, attachments.deleted)
}

func TestDocumentService_ListDocuments_Scope(t *testing.T) {
	var filter models.DocumentFilter
	documents := &mockDocumentRepository{
		listDocumentsFn: func(_ context.Context, f models.DocumentFilter) ([]models.Document, error) {
			filter = f
			return nil, nil
		},
	}
	svc := newTestDocumentService(documents, &mockClientRepository{}, &mockAttachmentService{})

	_, err := svc.ListDocuments(context.Background(), bobActor)

	require.NoError(t, err)
	assert.Equal(t, int64(3), filter.Owner.UserID)
	assert.Zero(t, filter.Limit)
}
