package models

import (
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/api"
)

type Message struct {
	ID          int64
	SenderID    int64
	RecipientID int64
	Subject     string
	Content     string
	MessageType api.MessageType
	Priority    api.Priority
	IsRead      bool
	CreatedAt   time.Time
}

func (m *Message) Public() api.Message {
	return api.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Content:     m.Content,
		MessageType: m.MessageType,
		Priority:    m.Priority,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}
