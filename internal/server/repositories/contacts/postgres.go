package contacts

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

func (r *PostgresRepository) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	query :=
		`INSERT INTO contact_messages (name, email, subject, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	if err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Subject, c.Message).
		Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
