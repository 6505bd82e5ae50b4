package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/access"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/querycache"
	"github.com/dmitrijs2005/focusgroup/internal/common"
)

// CurrentUserSource is satisfied by *Session.
type CurrentUserSource interface {
	CurrentUser(ctx context.Context) (*api.User, error)
}

// Dashboard serves the cached reads behind the dashboard screens.
type Dashboard struct {
	api   API
	cache *querycache.Cache
	users CurrentUserSource
}

func NewDashboard(a API, cache *querycache.Cache, users CurrentUserSource) *Dashboard {
	return &Dashboard{api: a, cache: cache, users: users}
}

func (d *Dashboard) Messages(ctx context.Context) ([]api.Message, error) {
	return querycache.Get(ctx, d.cache, common.QueryKeyMessages, d.api.ListMessages)
}

// MarkRead marks a message read and drops the cached inbox.
func (d *Dashboard) MarkRead(ctx context.Context, id int64) error {
	if err := d.api.MarkMessageRead(ctx, id); err != nil {
		return err
	}
	d.cache.Invalidate(common.QueryKeyMessages)
	return nil
}

func (d *Dashboard) UnreadCount(ctx context.Context) (int, error) {
	msgs, err := d.Messages(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range msgs {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (d *Dashboard) VerificationStatus(ctx context.Context) (*api.VerificationStatusResponse, error) {
	return querycache.Get(ctx, d.cache, common.QueryKeyVerificationStatus, d.api.VerificationStatus)
}

func (d *Dashboard) reviewer(ctx context.Context) error {
	u, err := d.users.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		return common.ErrorUnauthorized
	}
	if !access.CanReview(u.Role) {
		return fmt.Errorf("%w: role %q cannot review documents", common.ErrorForbidden, u.Role)
	}
	return nil
}

// UserDocuments lists another user's documents. Reviewers only; other roles
// are refused without a request.
func (d *Dashboard) UserDocuments(ctx context.Context, userID int64) (*api.VerificationStatusResponse, error) {
	if err := d.reviewer(ctx); err != nil {
		return nil, err
	}
	return d.api.UserVerificationStatus(ctx, userID)
}

// Review settles a document and drops the cached reads it affects.
func (d *Dashboard) Review(ctx context.Context, id int64, req api.ReviewDocumentRequest) (*api.VerificationDocument, error) {
	if err := d.reviewer(ctx); err != nil {
		return nil, err
	}
	doc, err := d.api.ReviewDocument(ctx, id, req)
	if err != nil {
		return nil, err
	}
	d.cache.Invalidate(common.QueryKeyParticipants)
	d.cache.Invalidate(common.QueryKeyVerificationStatus)
	return doc, nil
}

// Participants is limited to reviewers. Other roles are refused without a
// request.
func (d *Dashboard) Participants(ctx context.Context) ([]api.Participant, error) {
	u, err := d.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, common.ErrorUnauthorized
	}
	if !access.CanListParticipants(u.Role) {
		return nil, fmt.Errorf("%w: role %q cannot list participants", common.ErrorForbidden, u.Role)
	}
	return querycache.Get(ctx, d.cache, common.QueryKeyParticipants, d.api.ListParticipants)
}
