package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/dbx"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
)

const documentColumns = `id, user_id, document_type, status, file_name, content_type, size_bytes,
		 storage_key, rejection_reason, reviewed_by, uploaded_at, reviewed_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*models.Document, error) {
	d := &models.Document{}
	var reviewedBy sql.NullInt64
	var reviewedAt sql.NullTime
	if err := row.Scan(&d.ID, &d.UserID, &d.DocumentType, &d.Status, &d.FileName, &d.ContentType, &d.Size,
		&d.StorageKey, &d.RejectionReason, &reviewedBy, &d.UploadedAt, &reviewedAt); err != nil {
		return nil, err
	}
	if reviewedBy.Valid {
		d.ReviewedBy = &reviewedBy.Int64
	}
	if reviewedAt.Valid {
		d.ReviewedAt = &reviewedAt.Time
	}
	return d, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Document) (*models.Document, error) {
	query :=
		`INSERT INTO verification_documents (user_id, document_type, status, file_name, content_type, size_bytes, storage_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		d.UserID, d.DocumentType, d.Status, d.FileName, d.ContentType, d.Size, d.StorageKey,
	).Scan(&d.ID, &d.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM verification_documents WHERE id = $1`

	d, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM verification_documents
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Review(ctx context.Context, id int64, status api.DocumentStatus, reason string, reviewerID int64) error {
	query :=
		`UPDATE verification_documents
		 SET status = $2, rejection_reason = $3, reviewed_by = $4, reviewed_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, status, reason, reviewerID)
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
