package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/querycache"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticUser struct{ u *api.User }

func (s staticUser) CurrentUser(context.Context) (*api.User, error) { return s.u, nil }

func TestDashboard_MessagesCachedUntilMarkRead(t *testing.T) {
	fa := newFakeAPI()
	fa.MessagesFn = func(context.Context) ([]api.Message, error) {
		return []api.Message{{ID: 1}, {ID: 2, IsRead: true}}, nil
	}
	d := NewDashboard(fa, querycache.New(), staticUser{})
	ctx := context.Background()

	n, err := d.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = d.Messages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fa.count("ListMessages"))

	require.NoError(t, d.MarkRead(ctx, 1))
	_, err = d.Messages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fa.count("ListMessages"))
}

func TestDashboard_VerificationStatusCached(t *testing.T) {
	fa := newFakeAPI()
	cache := querycache.New()
	d := NewDashboard(fa, cache, staticUser{})

	_, err := d.VerificationStatus(context.Background())
	require.NoError(t, err)
	_, ok := cache.Peek(common.QueryKeyVerificationStatus)
	assert.True(t, ok)
}

func TestDashboard_ParticipantsByRole(t *testing.T) {
	tests := []struct {
		name    string
		user    *api.User
		wantErr error
	}{
		{name: "signed out", user: nil, wantErr: common.ErrorUnauthorized},
		{name: "client", user: &api.User{Role: api.RoleClient}, wantErr: common.ErrorForbidden},
		{name: "participant", user: &api.User{Role: api.RoleParticipant}, wantErr: common.ErrorForbidden},
		{name: "manager", user: &api.User{Role: api.RoleManager}},
		{name: "admin", user: &api.User{Role: api.RoleAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := newFakeAPI()
			d := NewDashboard(fa, querycache.New(), staticUser{tt.user})

			ps, err := d.Participants(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, fa.count("ListParticipants"))
				return
			}
			require.NoError(t, err)
			assert.Len(t, ps, 1)
		})
	}
}

func TestDashboard_ReviewByRole(t *testing.T) {
	tests := []struct {
		name    string
		user    *api.User
		wantErr error
	}{
		{name: "signed out", user: nil, wantErr: common.ErrorUnauthorized},
		{name: "client", user: &api.User{Role: api.RoleClient}, wantErr: common.ErrorForbidden},
		{name: "participant", user: &api.User{Role: api.RoleParticipant}, wantErr: common.ErrorForbidden},
		{name: "manager", user: &api.User{Role: api.RoleManager}},
		{name: "admin", user: &api.User{Role: api.RoleAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := newFakeAPI()
			d := NewDashboard(fa, querycache.New(), staticUser{tt.user})
			ctx := context.Background()

			st, docsErr := d.UserDocuments(ctx, 4)
			doc, reviewErr := d.Review(ctx, 40, api.ReviewDocumentRequest{Status: api.DocumentVerified})
			if tt.wantErr != nil {
				require.ErrorIs(t, docsErr, tt.wantErr)
				require.ErrorIs(t, reviewErr, tt.wantErr)
				assert.Zero(t, fa.count("UserVerificationStatus"))
				assert.Zero(t, fa.count("ReviewDocument"))
				return
			}
			require.NoError(t, docsErr)
			require.Len(t, st.Documents, 1)
			assert.Equal(t, int64(40), st.Documents[0].ID)
			require.NoError(t, reviewErr)
			assert.Equal(t, api.DocumentVerified, doc.Status)
		})
	}
}

func TestDashboard_ReviewInvalidatesAffectedReads(t *testing.T) {
	fa := newFakeAPI()
	cache := querycache.New()
	d := NewDashboard(fa, cache, staticUser{&api.User{Role: api.RoleManager}})
	ctx := context.Background()

	_, err := d.Participants(ctx)
	require.NoError(t, err)
	_, err = d.VerificationStatus(ctx)
	require.NoError(t, err)
	cache.Set(common.QueryKeyMessages, []api.Message{{ID: 1}})

	_, err = d.Review(ctx, 40, api.ReviewDocumentRequest{Status: api.DocumentRejected, RejectionReason: "Blurry"})
	require.NoError(t, err)

	_, ok := cache.Peek(common.QueryKeyParticipants)
	assert.False(t, ok)
	_, ok = cache.Peek(common.QueryKeyVerificationStatus)
	assert.False(t, ok)
	_, ok = cache.Peek(common.QueryKeyMessages)
	assert.True(t, ok)
}
