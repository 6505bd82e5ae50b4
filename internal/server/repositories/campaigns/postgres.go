package campaigns

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/dbx"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListStats(ctx context.Context) ([]*models.CampaignStats, error) {
	query :=
		`SELECT c.id, c.title,
		        (SELECT count(*) FROM campaign_questions q WHERE q.campaign_id = c.id),
		        (SELECT count(*) FROM campaign_responses r WHERE r.campaign_id = c.id),
		        c.completion_pct, c.health_status, c.updated_at
		 FROM campaigns c
		 ORDER BY c.id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.CampaignStats
	for rows.Next() {
		s := &models.CampaignStats{}
		if err := rows.Scan(&s.ID, &s.Title, &s.Questions, &s.Responses, &s.CompletionPct, &s.Health, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateHealth(ctx context.Context, id int64, completionPct float64, health models.CampaignHealth) error {
	query :=
		`UPDATE campaigns SET completion_pct = $2, health_status = $3, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, completionPct, health)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
