package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/events"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/repomanager"
)

// InvitationService stores waitlist applications.
type InvitationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	events      events.Publisher
	log         logging.Logger
}

func NewInvitationService(db *sql.DB, repomanager repomanager.RepositoryManager, publisher events.Publisher, log logging.Logger) *InvitationService {
	return &InvitationService{db: db, repomanager: repomanager, events: publisher, log: log.With("module", "invitations")}
}

func (s *InvitationService) Submit(ctx context.Context, req api.InvitationRequest) (*api.MessageResponse, error) {
	inv := &models.Invitation{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     normalizeEmail(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Company:   strings.TrimSpace(req.Company),
		Message:   strings.TrimSpace(req.Message),
		Status:    api.InvitationPending,
	}
	if err := required(
		field{"firstName", inv.FirstName},
		field{"lastName", inv.LastName},
		field{"email", inv.Email},
		field{"company", inv.Company},
	); err != nil {
		return nil, err
	}
	if !validEmail(inv.Email) {
		return nil, common.NewFieldError("Please enter a valid email address", "email")
	}

	inv, err := s.repomanager.Invitations(s.db).Create(ctx, inv)
	if err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, events.TypeInvitationSubmitted, events.InvitationPayload{
		FirstName: inv.FirstName,
		LastName:  inv.LastName,
		Email:     inv.Email,
		Company:   inv.Company,
	}); err != nil {
		s.log.Error(ctx, "publish invitation failed", "invitation_id", inv.ID, "error", err)
	}
	s.log.Info(ctx, "invitation submitted", "invitation_id", inv.ID)
	return &api.MessageResponse{Message: "Thank you! Your application has been submitted."}, nil
}

type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	events      events.Publisher
	log         logging.Logger
}

func NewContactService(db *sql.DB, repomanager repomanager.RepositoryManager, publisher events.Publisher, log logging.Logger) *ContactService {
	return &ContactService{db: db, repomanager: repomanager, events: publisher, log: log.With("module", "contacts")}
}

func (s *ContactService) Submit(ctx context.Context, req api.ContactRequest) (*api.MessageResponse, error) {
	c := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := required(field{"name", c.Name}, field{"email", c.Email}, field{"message", c.Message}); err != nil {
		return nil, err
	}
	if !validEmail(c.Email) {
		return nil, common.NewFieldError("Please enter a valid email address", "email")
	}

	c, err := s.repomanager.Contacts(s.db).Create(ctx, c)
	if err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, events.TypeContactSubmitted, events.ContactPayload{
		Name:    c.Name,
		Email:   c.Email,
		Subject: c.Subject,
		Message: c.Message,
	}); err != nil {
		s.log.Error(ctx, "publish contact failed", "contact_id", c.ID, "error", err)
	}
	return &api.MessageResponse{Message: "Thanks for reaching out. We'll get back to you soon."}, nil
}
