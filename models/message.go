// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Attachment is a file attached to a chat message.
type Attachment struct {
	StoredName   string `json:"stored_name"`
	OriginalName string `json:"original_name,omitempty"`
}

// DownloadName returns the name offered to the user on download.
func (a Attachment) DownloadName() string {
	if a.OriginalName != "" {
		return a.OriginalName
	}
	return a.StoredName
}

// Message is an entry of the global chat. Content may be empty only when an
// attachment is present.
type Message struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id"`
	Username   string      `json:"username,omitempty"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// TableName returns the name of the database table
// associated with the Message model.
func (m Message) TableName() string {
	return "messages"
}

// HasContent reports whether the message satisfies the content invariant.
func (m Message) HasContent() bool {
	return m.Content != "" || m.Attachment != nil
}
