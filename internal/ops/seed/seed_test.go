package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

type fakeSeeder struct {
	written bool
	err     error
}

func (f fakeSeeder) Seed(context.Context) (bool, error) { return f.written, f.err }

func TestSeedMenuSettings(t *testing.T) {
	require.NoError(t, SeedMenuSettings(context.Background(), fakeSeeder{written: true}, logging.Nop()))
	require.NoError(t, SeedMenuSettings(context.Background(), fakeSeeder{}, logging.Nop()))

	err := SeedMenuSettings(context.Background(), fakeSeeder{err: errors.New("db down")}, logging.Nop())
	assert.ErrorContains(t, err, "db down")
}

// fakeUsers implements users.Repository over a map keyed by email.
type fakeUsers struct {
	byEmail map[string]*models.User
	getErr  error
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = int64(len(f.byEmail) + 1)
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(context.Context, int64) (*models.User, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) ListByRole(context.Context, api.Role) ([]*models.User, error) { return nil, nil }

func (f *fakeUsers) UpdateVerificationStatus(context.Context, int64, api.VerificationStatus) error {
	return nil
}

func (f *fakeUsers) UpdatePassword(context.Context, int64, []byte) error { return nil }

func TestSeedAdmin(t *testing.T) {
	repo := &fakeUsers{byEmail: map[string]*models.User{}}
	opts := AdminOptions{Email: " Root@Example.com ", Password: "longenough"}

	created, err := SeedAdmin(context.Background(), repo, opts, logging.Nop())
	require.NoError(t, err)
	assert.True(t, created)

	u := repo.byEmail["root@example.com"]
	require.NotNil(t, u)
	assert.Equal(t, api.RoleAdmin, u.Role)
	assert.Equal(t, "Admin", u.FirstName)
	require.NoError(t, bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("longenough")))

	created, err = SeedAdmin(context.Background(), repo, opts, logging.Nop())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.byEmail, 1)
}

func TestSeedAdmin_Validation(t *testing.T) {
	repo := &fakeUsers{byEmail: map[string]*models.User{}}

	_, err := SeedAdmin(context.Background(), repo, AdminOptions{Email: "nope", Password: "longenough"}, logging.Nop())
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = SeedAdmin(context.Background(), repo, AdminOptions{Email: "a@b.co", Password: "short"}, logging.Nop())
	assert.ErrorIs(t, err, common.ErrorValidation)

	repo.getErr = errors.New("db down")
	_, err = SeedAdmin(context.Background(), repo, AdminOptions{Email: "a@b.co", Password: "longenough"}, logging.Nop())
	assert.EqualError(t, err, "db down")
	assert.Empty(t, repo.byEmail)
}
