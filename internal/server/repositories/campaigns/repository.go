package campaigns

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type Repository interface {
	// ListStats returns every campaign with its question and response counts.
	ListStats(ctx context.Context) ([]*models.CampaignStats, error)
	UpdateHealth(ctx context.Context, id int64, completionPct float64, health models.CampaignHealth) error
}
