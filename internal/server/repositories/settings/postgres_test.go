package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectQuery = `(?s)^SELECT\s+settings\s+FROM\s+menu_settings\s+WHERE\s+id\s*=\s*1$`
	upsertQuery = `(?s)^INSERT\s+INTO\s+menu_settings.*ON\s+CONFLICT\s+\(id\)\s+DO\s+UPDATE`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestGet_DecodesDocument(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	want := api.DefaultMenuSettings()
	want.Pricing = api.MenuSection{Enabled: false, Visible: false, Title: "Plans"}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectQuery(selectQuery).WillReturnRows(sqlmock.NewRows([]string{"settings"}).AddRow(raw))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(selectQuery).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_CorruptDocument(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(selectQuery).WillReturnRows(sqlmock.NewRows([]string{"settings"}).AddRow([]byte("{")))

	_, err := repo.Get(context.Background())
	assert.ErrorContains(t, err, "decode menu settings")
}

func TestUpsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	m := api.DefaultMenuSettings()
	raw, _ := json.Marshal(m)

	mock.ExpectExec(upsertQuery).
		WithArgs(raw, sql.NullInt64{Int64: 9, Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertQuery).
		WithArgs(raw, sql.NullInt64{}).
		WillReturnError(errors.New("boom"))

	require.NoError(t, repo.Upsert(context.Background(), m, 9))
	assert.ErrorContains(t, repo.Upsert(context.Background(), m, 0), "db error: boom")
	require.NoError(t, mock.ExpectationsWereMet())
}
