package resettokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	FindByHash(ctx context.Context, tokenHash string) (*models.ResetToken, error)
	// MarkUsed consumes the token. It returns common.ErrorNotFound when the
	// token is unknown or was already used.
	MarkUsed(ctx context.Context, id int64) error
}
