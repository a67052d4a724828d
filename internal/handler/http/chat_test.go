// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mini-crm/internal/service"
	"github.com/MKhiriev/go-mini-crm/models"
)

func TestSendMessage_JSON(t *testing.T) {
	services := newTestServices()
	services.ChatService = &mockChatService{
		sendMessageFn: func(_ context.Context, actor models.Actor, content string, attachment *models.Upload) (models.Message, error) {
			assert.Equal(t, aliceActor, actor)
			assert.Equal(t, "hello team", content)
			assert.Nil(t, attachment)
			return models.Message{ID: 1, UserID: actor.UserID, Username: actor.Username, Content: content}, nil
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodPost, "/api/chat/messages", "alice-token",
		strings.NewReader(`{"content":"hello team"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var message models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &message))
	assert.Equal(t, "alice", message.Username)
}

func TestSendMessage_MultipartWithAttachment(t *testing.T) {
	services := newTestServices()
	services.ChatService = &mockChatService{
		sendMessageFn: func(_ context.Context, _ models.Actor, content string, attachment *models.Upload) (models.Message, error) {
			assert.Equal(t, "see picture", content)
			require.NotNil(t, attachment)
			assert.Equal(t, "plan.png", attachment.Filename)
			data, err := io.ReadAll(attachment.Content)
			require.NoError(t, err)
			assert.Equal(t, "PNG", string(data))
			return models.Message{ID: 2, Content: content, Attachment: &models.Attachment{StoredName: "x_plan.png", OriginalName: "plan.png"}}, nil
		},
	}
	router := newTestRouter(t, services)

	body, contentType := multipartBody(t, map[string]string{"content": "see picture"}, "plan.png", []byte("PNG"))
	rec := doMultipart(t, router, "/api/chat/messages", "alice-token", body, contentType)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSendMessage_MultipartWithoutFile(t *testing.T) {
	services := newTestServices()
	services.ChatService = &mockChatService{
		sendMessageFn: func(_ context.Context, _ models.Actor, content string, attachment *models.Upload) (models.Message, error) {
			assert.Nil(t, attachment)
			return models.Message{ID: 3, Content: content}, nil
		},
	}
	router := newTestRouter(t, services)

	body, contentType := multipartBody(t, map[string]string{"content": "text only"}, "", nil)
	rec := doMultipart(t, router, "/api/chat/messages", "alice-token", body, contentType)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSendMessage_Empty(t *testing.T) {
	services := newTestServices()
	services.ChatService = &mockChatService{
		sendMessageFn: func(context.Context, models.Actor, string, *models.Upload) (models.Message, error) {
			return models.Message{}, service.ErrEmptyMessage
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodPost, "/api/chat/messages", "alice-token", strings.NewReader(`{"content":"  "}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrEmptyMessage.Error(), errorBody(t, rec))
}

func TestListMessages_VisibleToAgents(t *testing.T) {
	services := newTestServices()
	services.ChatService = &mockChatService{
		listMessagesFn: func(context.Context) ([]models.Message, error) {
			return []models.Message{
				{ID: 1, UserID: 1, Username: "admin", Content: "welcome"},
				{ID: 2, UserID: 3, Username: "bob", Content: "hi"},
			}, nil
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodGet, "/api/chat/messages", "alice-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var messages []models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	assert.Len(t, messages, 2)
}

func TestDownloadAttachment(t *testing.T) {
	services := newTestServices()
	services.ChatService = &mockChatService{
		downloadAttachmentFn: func(_ context.Context, messageID int64) (models.FileDownload, error) {
			assert.Equal(t, int64(2), messageID)
			return models.FileDownload{Name: "plan.png", Content: io.NopCloser(strings.NewReader("PNG"))}, nil
		},
	}
	router := newTestRouter(t, services)

	rec := doRequest(t, router, http.MethodGet, "/api/chat/messages/2/file", "alice-token", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "PNG", rec.Body.String())
}

func TestDownloadAttachment_NoAttachment(t *testing.T) {
	router := newTestRouter(t, newTestServices())

	rec := doRequest(t, router, http.MethodGet, "/api/chat/messages/2/file", "alice-token", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
