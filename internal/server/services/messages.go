package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/focusgroup/internal/access"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/auth"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/repomanager"
	"github.com/microcosm-cc/bluemonday"
)

type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      *bluemonday.Policy
	log         logging.Logger
}

func NewMessageService(db *sql.DB, repomanager repomanager.RepositoryManager, log logging.Logger) *MessageService {
	return &MessageService{
		db:          db,
		repomanager: repomanager,
		policy:      bluemonday.StrictPolicy(),
		log:         log.With("module", "messages"),
	}
}

// List returns what the user sent or received, newest first.
func (s *MessageService) List(ctx context.Context, userID int64) ([]api.Message, error) {
	list, err := s.repomanager.Messages(s.db).ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]api.Message, 0, len(list))
	for _, m := range list {
		result = append(result, m.Public())
	}
	return result, nil
}

func (s *MessageService) Send(ctx context.Context, caller auth.Identity, req api.SendMessageRequest) (*api.Message, error) {
	if !access.CanSendMessages(caller.Role) {
		return nil, fail(common.ErrorForbidden, "Insufficient permissions")
	}

	subject := strings.TrimSpace(s.policy.Sanitize(req.Subject))
	content := strings.TrimSpace(s.policy.Sanitize(req.Content))
	missing := []string(nil)
	if req.RecipientID <= 0 {
		missing = append(missing, "recipientId")
	}
	if subject == "" {
		missing = append(missing, "subject")
	}
	if content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, common.NewFieldError(requiredFieldsMessage, missing...)
	}

	msgType := req.MessageType
	if msgType == "" {
		msgType = api.MessageGeneral
	}
	if !msgType.Valid() {
		return nil, common.NewFieldError("Unknown message type", "messageType")
	}
	priority := req.Priority
	if priority == "" {
		priority = api.PriorityNormal
	}
	if !priority.Valid() {
		return nil, common.NewFieldError("Unknown priority", "priority")
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fail(common.ErrorNotFound, "Recipient not found")
		}
		return nil, err
	}

	m, err := s.repomanager.Messages(s.db).Create(ctx, &models.Message{
		SenderID:    caller.UserID,
		RecipientID: req.RecipientID,
		Subject:     subject,
		Content:     content,
		MessageType: msgType,
		Priority:    priority,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "message sent", "message_id", m.ID, "sender_id", m.SenderID, "recipient_id", m.RecipientID)
	pub := m.Public()
	return &pub, nil
}

// MarkRead is allowed for the recipient only.
func (s *MessageService) MarkRead(ctx context.Context, caller auth.Identity, id int64) error {
	repo := s.repomanager.Messages(s.db)
	m, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(common.ErrorNotFound, "Message not found")
		}
		return err
	}
	if m.RecipientID != caller.UserID {
		return fail(common.ErrorForbidden, "Only the recipient can mark a message as read")
	}
	if m.IsRead {
		return nil
	}
	return repo.MarkRead(ctx, id)
}
