// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/models"
)

type messageRepository struct {
	*DB
	logger *logger.Logger
}

func NewMessageRepository(db *DB, logger *logger.Logger) MessageRepository {
	logger.Debug().Msg("MessageRepository created")
	return &messageRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *messageRepository) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	log := logger.FromContext(ctx)

	var storedName, originalName sql.NullString
	if message.Attachment != nil {
		storedName = nullString(message.Attachment.StoredName)
		originalName = nullString(message.Attachment.OriginalName)
	}

	query, args, err := r.builder().
		Insert("messages").
		Columns("user_id", "content", "created_at", "filename", "original_name").
		Values(message.UserID, message.Content, message.CreatedAt, storedName, originalName).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&message.ID); err != nil {
		log.Err(err).Str("func", "*messageRepository.CreateMessage").Int64("user_id", message.UserID).Msg("error inserting message")
		return models.Message{}, r.classify(err)
	}

	return message, nil
}

func (r *messageRepository) GetMessage(ctx context.Context, id int64) (models.Message, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildGetMessageQuery(id)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	message, err := scanMessage(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.GetMessage").Int64("message_id", id).Msg("error scanning message")
		return models.Message{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return message, nil
}

// ListMessages returns the whole global chat, oldest first.
func (r *messageRepository) ListMessages(ctx context.Context) ([]models.Message, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildListMessagesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.ListMessages").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0, 100)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			log.Err(err).Str("func", "*messageRepository.ListMessages").Msg("failed to scan message row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*messageRepository.ListMessages").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return messages, nil
}

func scanMessage(row rowScanner) (models.Message, error) {
	var (
		message      models.Message
		storedName   sql.NullString
		originalName sql.NullString
	)
	err := row.Scan(
		&message.ID,
		&message.UserID,
		&message.Username,
		&message.Content,
		&message.CreatedAt,
		&storedName,
		&originalName,
	)
	if storedName.Valid && storedName.String != "" {
		message.Attachment = &models.Attachment{
			StoredName:   storedName.String,
			OriginalName: originalName.String,
		}
	}
	return message, err
}
