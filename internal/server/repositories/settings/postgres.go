package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*api.MenuSettings, error) {
	query := `SELECT settings FROM menu_settings WHERE id = 1`

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	m := &api.MenuSettings{}
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("decode menu settings: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, m api.MenuSettings, updatedBy int64) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode menu settings: %w", err)
	}

	var by sql.NullInt64
	if updatedBy > 0 {
		by = sql.NullInt64{Int64: updatedBy, Valid: true}
	}

	query :=
		`INSERT INTO menu_settings (id, settings, updated_by, updated_at)
		 VALUES (1, $1, $2, now())
		 ON CONFLICT (id) DO UPDATE
		 SET settings = EXCLUDED.settings, updated_by = EXCLUDED.updated_by, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, raw, by); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
