// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"
)

// StorageArea names one of the disjoint content areas holding uploaded files.
type StorageArea string

const (
	// AreaDocuments holds the files of Document records.
	AreaDocuments StorageArea = "documents"
	// AreaChat holds the attachments of chat messages.
	AreaChat StorageArea = "chat"
)

// Document is an uploaded PDF file.
type Document struct {
	ID int64 `json:"id"`

	// StoredName is the collision-resistant name of the file inside the
	// documents area. It is never used for download naming.
	StoredName string `json:"stored_name"`

	// OriginalName is the filename as uploaded by the user.
	OriginalName string `json:"original_name"`

	UploadedAt time.Time `json:"uploaded_at"`
	ClientID   *int64    `json:"client_id,omitempty"`
	UserID     int64     `json:"user_id"`
}

// TableName returns the name of the database table
// associated with the Document model.
func (d Document) TableName() string {
	return "documents"
}

// Upload is an incoming file.
type Upload struct {
	Filename string
	Content  io.Reader
}

// FileDownload is an outgoing file. The caller must close Content.
type FileDownload struct {
	Name    string
	Content io.ReadCloser
}
