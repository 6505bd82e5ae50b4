package messages

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Message) (*models.Message, error)
	Get(ctx context.Context, id int64) (*models.Message, error)
	// ListForUser returns messages the user sent or received, newest first.
	ListForUser(ctx context.Context, userID int64) ([]*models.Message, error)
	MarkRead(ctx context.Context, id int64) error
}
