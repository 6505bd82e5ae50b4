package invitations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/dbx"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	query :=
		`INSERT INTO invitation_requests (first_name, last_name, email, phone, company, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		inv.FirstName, inv.LastName, inv.Email, inv.Phone, inv.Company, inv.Message, inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}
