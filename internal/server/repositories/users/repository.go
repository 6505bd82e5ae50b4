package users

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListByRole(ctx context.Context, role api.Role) ([]*models.User, error)
	UpdateVerificationStatus(ctx context.Context, id int64, status api.VerificationStatus) error
	UpdatePassword(ctx context.Context, id int64, hash []byte) error
}
