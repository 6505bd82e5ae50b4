package api

import "time"

type MessageType string

const (
	MessageGeneral        MessageType = "general"
	MessageWarning        MessageType = "warning"
	MessageCampaignInvite MessageType = "campaign_invite"
	MessageSystem         MessageType = "system"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageGeneral, MessageWarning, MessageCampaignInvite, MessageSystem:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Message struct {
	ID          int64       `json:"id"`
	SenderID    int64       `json:"senderId"`
	RecipientID int64       `json:"recipientId"`
	Subject     string      `json:"subject"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"messageType"`
	Priority    Priority    `json:"priority"`
	IsRead      bool        `json:"isRead"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type SendMessageRequest struct {
	RecipientID int64       `json:"recipientId"`
	Subject     string      `json:"subject"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"messageType"`
	Priority    Priority    `json:"priority"`
}
