package settings

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/api"
)

// Repository stores the menu settings as a single document.
type Repository interface {
	// Get returns common.ErrorNotFound until the first Upsert.
	Get(ctx context.Context) (*api.MenuSettings, error)
	// Upsert replaces the whole document. updatedBy is zero for seeds.
	Upsert(ctx context.Context, m api.MenuSettings, updatedBy int64) error
}
