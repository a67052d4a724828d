// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/models"
)

type chatService struct {
	messageRepository store.MessageRepository
	attachments       AttachmentService

	logger *logger.Logger
}

func NewChatService(messageRepository store.MessageRepository, attachments AttachmentService, logger *logger.Logger) ChatService {
	return &chatService{
		messageRepository: messageRepository,
		attachments:       attachments,
		logger:            logger,
	}
}

func (c *chatService) ListMessages(ctx context.Context) ([]models.Message, error) {
	messages, err := c.messageRepository.ListMessages(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.ListMessages").Msg("failed to list messages")
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// SendMessage posts to the global chat. An attachment without a filename
// counts as no attachment; a message needs text, a file or both.
func (c *chatService) SendMessage(ctx context.Context, actor models.Actor, content string, attachment *models.Upload) (models.Message, error) {
	log := logger.FromContext(ctx)

	message := models.Message{
		UserID:    actor.UserID,
		Username:  actor.Username,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	}

	var originalName string
	if attachment != nil && attachment.Content != nil {
		originalName = OriginalFileName(attachment.Filename)
	}

	if message.Content == "" && originalName == "" {
		return models.Message{}, ErrEmptyMessage
	}

	if originalName != "" {
		storedName, err := c.attachments.Store(ctx, models.AreaChat, models.Upload{Filename: originalName, Content: attachment.Content})
		if err != nil {
			return models.Message{}, err
		}
		message.Attachment = &models.Attachment{StoredName: storedName, OriginalName: originalName}
	}

	created, err := c.messageRepository.CreateMessage(ctx, message)
	if err != nil {
		if message.Attachment != nil {
			c.attachments.Delete(ctx, models.AreaChat, message.Attachment.StoredName)
		}
		log.Err(err).Str("func", "*chatService.SendMessage").Int64("user_id", actor.UserID).Msg("failed to create message")
		return models.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	created.Username = actor.Username
	return created, nil
}

func (c *chatService) DownloadAttachment(ctx context.Context, messageID int64) (models.FileDownload, error) {
	message, err := c.messageRepository.GetMessage(ctx, messageID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.FileDownload{}, ErrMessageNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.DownloadAttachment").Int64("message_id", messageID).Msg("failed to load message")
		return models.FileDownload{}, fmt.Errorf("failed to load message: %w", err)
	}

	if message.Attachment == nil {
		return models.FileDownload{}, ErrAttachmentNotFound
	}

	content, err := c.attachments.Retrieve(ctx, models.AreaChat, message.Attachment.StoredName)
	if err != nil {
		return models.FileDownload{}, err
	}

	return models.FileDownload{Name: message.Attachment.DownloadName(), Content: content}, nil
}
