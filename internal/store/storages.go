// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
)

// Storages groups every repository of the CRM with the file storage.
type Storages struct {
	db *DB

	UserRepository        UserRepository
	ClientRepository      ClientRepository
	AppointmentRepository AppointmentRepository
	DocumentRepository    DocumentRepository
	RevenueRepository     RevenueRepository
	MessageRepository     MessageRepository
	FileStorage           FileStorage
}

// NewStorages connects to the configured database, applies migrations and
// opens the configured file storage backend.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		db.Close()
		return nil, err
	}

	files, err := NewFileStorage(ctx, cfg.Files, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return NewStoragesWithDB(db, files, log), nil
}

// NewFileStorage opens the backend selected by cfg.Backend.
func NewFileStorage(ctx context.Context, cfg config.Files, log *logger.Logger) (FileStorage, error) {
	switch cfg.Backend {
	case config.FilesBackendLocal:
		return NewLocalFileStorage(cfg.DocumentsDir, cfg.ChatDir, log)
	case config.FilesBackendS3:
		return NewMinioFileStorage(ctx, cfg.S3, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}

// NewStoragesWithDB builds the repositories over an open connection.
func NewStoragesWithDB(db *DB, files FileStorage, log *logger.Logger) *Storages {
	return &Storages{
		db:                    db,
		UserRepository:        NewUserRepository(db, log),
		ClientRepository:      NewClientRepository(db, log),
		AppointmentRepository: NewAppointmentRepository(db, log),
		DocumentRepository:    NewDocumentRepository(db, log),
		RevenueRepository:     NewRevenueRepository(db, log),
		MessageRepository:     NewMessageRepository(db, log),
		FileStorage:           files,
	}
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
