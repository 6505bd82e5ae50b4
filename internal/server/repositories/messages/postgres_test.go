package messages

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "sender_id", "recipient_id", "subject", "content", "message_type", "priority", "is_read", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+messages\s*\(sender_id,\s*recipient_id,\s*subject,\s*content,\s*message_type,\s*priority\)`).
		WithArgs(int64(1), int64(2), "Hi", "Body", api.MessageGeneral, api.PriorityHigh).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_read", "created_at"}).AddRow(int64(10), false, now))

	m, err := repo.Create(context.Background(), &models.Message{
		SenderID: 1, RecipientID: 2, Subject: "Hi", Content: "Body",
		MessageType: api.MessageGeneral, Priority: api.PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), m.ID)
	assert.False(t, m.IsRead)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^SELECT\s+id,.*FROM\s+messages\s+WHERE\s+id\s*=\s*\$1$`

	mock.ExpectQuery(q).WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(10), int64(1), int64(2), "Hi", "Body", "warning", "urgent", true, time.Now()))
	mock.ExpectQuery(q).WithArgs(int64(11)).WillReturnError(sql.ErrNoRows)

	m, err := repo.Get(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, api.MessageWarning, m.MessageType)
	assert.Equal(t, api.PriorityUrgent, m.Priority)
	assert.True(t, m.IsRead)

	_, err = repo.Get(context.Background(), 11)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListForUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+messages\s+WHERE\s+recipient_id\s*=\s*\$1\s+OR\s+sender_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(2), int64(1), int64(2), "b", "b", "general", "normal", false, now).
			AddRow(int64(1), int64(2), int64(1), "a", "a", "general", "normal", true, now.Add(-time.Hour)))

	got, err := repo.ListForUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestListForUser_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+messages`).WillReturnError(errors.New("down"))

	_, err := repo.ListForUser(context.Background(), 2)
	assert.ErrorContains(t, err, "db error: down")
}

func TestMarkRead(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `^UPDATE\s+messages\s+SET\s+is_read\s*=\s*TRUE\s+WHERE\s+id\s*=\s*\$1$`

	mock.ExpectExec(q).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkRead(context.Background(), 1))
	assert.ErrorIs(t, repo.MarkRead(context.Background(), 99), common.ErrorNotFound)
}
