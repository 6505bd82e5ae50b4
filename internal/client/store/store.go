// Package store opens the client's local SQLite database and exposes the
// typed accessors built on top of the metadata table.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/client/migrations"
	"github.com/dmitrijs2005/focusgroup/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/focusgroup/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

type Store struct {
	db       *sql.DB
	Metadata metadata.Repository
	Tokens   *TokenStore
}

// Open opens (creating if needed) the database at dsn and applies migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	// SQLite serialises writers; one connection also keeps ":memory:" coherent.
	db.SetMaxOpenConns(1)

	if err := gooseUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	repo := metadata.NewSQLiteRepository(db)
	return &Store{db: db, Metadata: repo, Tokens: NewTokenStore(repo)}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
