package contacts

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Contact) (*models.Contact, error)
}
