package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageService(t *testing.T) (*MessageService, *fakeStore) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	store := newFakeStore()
	return NewMessageService(db, &fakeRepoManager{s: store}, logging.Nop()), store
}

func TestSend_SanitisesAndDefaults(t *testing.T) {
	s, store := newMessageService(t)
	mgr := store.addUser("m@example.com", api.RoleManager, "password1")
	p := store.addUser("p@example.com", api.RoleParticipant, "password1")

	m, err := s.Send(context.Background(), auth.Identity{UserID: mgr.ID, Role: mgr.Role}, api.SendMessageRequest{
		RecipientID: p.ID,
		Subject:     "<b>Welcome</b>",
		Content:     `Hello <script>alert(1)</script>there`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", m.Subject)
	assert.Equal(t, "Hello there", m.Content)
	assert.Equal(t, api.MessageGeneral, m.MessageType)
	assert.Equal(t, api.PriorityNormal, m.Priority)
	assert.Equal(t, mgr.ID, m.SenderID)
	assert.False(t, m.IsRead)
}

func TestSend_Rejections(t *testing.T) {
	s, store := newMessageService(t)
	mgr := store.addUser("m@example.com", api.RoleAdmin, "password1")
	caller := auth.Identity{UserID: mgr.ID, Role: mgr.Role}

	_, err := s.Send(context.Background(), auth.Identity{UserID: 5, Role: api.RoleParticipant}, api.SendMessageRequest{RecipientID: mgr.ID, Subject: "s", Content: "c"})
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = s.Send(context.Background(), caller, api.SendMessageRequest{RecipientID: mgr.ID, Subject: "s", Content: "<i></i>"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Send(context.Background(), caller, api.SendMessageRequest{RecipientID: mgr.ID, Subject: "s", Content: "c", Priority: "asap"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Send(context.Background(), caller, api.SendMessageRequest{RecipientID: 404, Subject: "s", Content: "c"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.EqualError(t, err, "Recipient not found")
}

func TestListAndMarkRead(t *testing.T) {
	s, store := newMessageService(t)
	mgr := store.addUser("m@example.com", api.RoleManager, "password1")
	p := store.addUser("p@example.com", api.RoleParticipant, "password1")
	other := store.addUser("o@example.com", api.RoleParticipant, "password1")
	ctx := context.Background()

	sent, err := s.Send(ctx, auth.Identity{UserID: mgr.ID, Role: mgr.Role}, api.SendMessageRequest{RecipientID: p.ID, Subject: "s", Content: "c", Priority: api.PriorityUrgent})
	require.NoError(t, err)

	inbox, err := s.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	outbox, err := s.List(ctx, mgr.ID)
	require.NoError(t, err)
	assert.Len(t, outbox, 1)
	empty, err := s.List(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	err = s.MarkRead(ctx, auth.Identity{UserID: mgr.ID, Role: mgr.Role}, sent.ID)
	assert.ErrorIs(t, err, common.ErrorForbidden)
	assert.ErrorIs(t, s.MarkRead(ctx, auth.Identity{UserID: p.ID}, 999), common.ErrorNotFound)

	require.NoError(t, s.MarkRead(ctx, auth.Identity{UserID: p.ID, Role: p.Role}, sent.ID))
	require.NoError(t, s.MarkRead(ctx, auth.Identity{UserID: p.ID, Role: p.Role}, sent.ID))
	assert.True(t, store.messages[sent.ID].IsRead)
}
