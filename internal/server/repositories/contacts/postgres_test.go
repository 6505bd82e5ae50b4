package contacts

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+contact_messages\s*\(name,\s*email,\s*subject,\s*message\)`).
		WithArgs("Bob", "bob@example.com", "", "Hello").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), time.Now()))

	c, err := NewPostgresRepository(db).Create(context.Background(), &models.Contact{Name: "Bob", Email: "bob@example.com", Message: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
