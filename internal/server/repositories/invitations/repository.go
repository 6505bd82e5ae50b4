package invitations

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error)
}
