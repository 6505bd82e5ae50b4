package documents

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, d *models.Document) (*models.Document, error)
	Get(ctx context.Context, id int64) (*models.Document, error)
	// ListByUser returns the user's documents, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Document, error)
	Review(ctx context.Context, id int64, status api.DocumentStatus, reason string, reviewerID int64) error
}
