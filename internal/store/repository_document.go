// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/models"
)

type documentRepository struct {
	*DB
	logger *logger.Logger
}

func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("DocumentRepository created")
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *documentRepository) CreateDocument(ctx context.Context, document models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Insert("documents").
		Columns("filename", "original_name", "uploaded_at", "client_id", "user_id").
		Values(document.StoredName, document.OriginalName, document.UploadedAt, nullInt64(document.ClientID), document.UserID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&document.ID); err != nil {
		log.Err(err).
			Str("func", "*documentRepository.CreateDocument").
			Str("stored_name", document.StoredName).
			Int64("user_id", document.UserID).
			Msg("error inserting document")
		return models.Document{}, r.classify(err)
	}

	return document, nil
}

func (r *documentRepository) GetDocument(ctx context.Context, id int64) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	document, err := scanDocument(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.GetDocument").Int64("document_id", id).Msg("error scanning document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return document, nil
}

func (r *documentRepository) DeleteDocument(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Delete("documents").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.DeleteDocument").Int64("document_id", id).Msg("error deleting document")
		return r.classify(err)
	}

	return expectAffected(result)
}

func (r *documentRepository) ListDocuments(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildListDocumentsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.ListDocuments").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	documents := make([]models.Document, 0, 50)
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			log.Err(err).Str("func", "*documentRepository.ListDocuments").Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*documentRepository.ListDocuments").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return documents, nil
}

func (r *documentRepository) CountDocuments(ctx context.Context, owner models.OwnerFilter) (int64, error) {
	return r.count(ctx, "documents", owner)
}

func scanDocument(row rowScanner) (models.Document, error) {
	var (
		document models.Document
		clientID sql.NullInt64
	)
	err := row.Scan(
		&document.ID,
		&document.StoredName,
		&document.OriginalName,
		&document.UploadedAt,
		&clientID,
		&document.UserID,
	)
	document.ClientID = int64Ptr(clientID)
	return document, err
}
