package services

import (
	"context"
	"database/sql"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/dbx"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	campaignsrepo "github.com/dmitrijs2005/focusgroup/internal/server/repositories/campaigns"
	contactsrepo "github.com/dmitrijs2005/focusgroup/internal/server/repositories/contacts"
	documentsrepo "github.com/dmitrijs2005/focusgroup/internal/server/repositories/documents"
	invitationsrepo "github.com/dmitrijs2005/focusgroup/internal/server/repositories/invitations"
	messagesrepo "github.com/dmitrijs2005/focusgroup/internal/server/repositories/messages"
	resettokensrepo "github.com/dmitrijs2005/focusgroup/internal/server/repositories/resettokens"
	settingsrepo "github.com/dmitrijs2005/focusgroup/internal/server/repositories/settings"
	usersrepo "github.com/dmitrijs2005/focusgroup/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeStore is an in-memory stand-in for every repository.
type fakeStore struct {
	mu sync.Mutex

	users    map[int64]*models.User
	resets   map[string]*models.ResetToken
	settings *api.MenuSettings
	messages map[int64]*models.Message
	docs     map[int64]*models.Document
	invites  []*models.Invitation
	contacts []*models.Contact

	nextID int64
	// failNext is returned by the next repository call.
	failNext error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[int64]*models.User{},
		resets:   map[string]*models.ResetToken{},
		messages: map[int64]*models.Message{},
		docs:     map[int64]*models.Document{},
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) takeErr() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *fakeStore) addUser(email string, role api.Role, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &models.User{ID: s.id(), Email: email, PasswordHash: hash, FirstName: "F", LastName: "L",
		Role: role, VerificationStatus: api.VerificationNotSubmitted}
	s.users[u.ID] = u
	return u
}

type fakeRepoManager struct{ s *fakeStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return (*fakeUsers)(m.s) }
func (m *fakeRepoManager) ResetTokens(dbx.DBTX) resettokensrepo.Repository { return (*fakeResets)(m.s) }
func (m *fakeRepoManager) Settings(dbx.DBTX) settingsrepo.Repository { return (*fakeSettings)(m.s) }
func (m *fakeRepoManager) Messages(dbx.DBTX) messagesrepo.Repository { return (*fakeMessages)(m.s) }
func (m *fakeRepoManager) Documents(dbx.DBTX) documentsrepo.Repository { return (*fakeDocs)(m.s) }
func (m *fakeRepoManager) Invitations(dbx.DBTX) invitationsrepo.Repository { return (*fakeInvites)(m.s) }
func (m *fakeRepoManager) Contacts(dbx.DBTX) contactsrepo.Repository { return (*fakeContacts)(m.s) }
func (m *fakeRepoManager) Campaigns(dbx.DBTX) campaignsrepo.Repository { return nil }

type fakeUsers fakeStore

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = s.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) ListByRole(_ context.Context, role api.Role) ([]*models.User, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.User
	for _, u := range s.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) UpdateVerificationStatus(_ context.Context, id int64, status api.VerificationStatus) error {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	u, ok := s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.VerificationStatus = status
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash []byte) error {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

type fakeResets fakeStore

func (f *fakeResets) Create(_ context.Context, userID int64, hash string, expiresAt time.Time) error {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[hash] = &models.ResetToken{ID: s.id(), UserID: userID, TokenHash: hash, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeResets) FindByHash(_ context.Context, hash string) (*models.ResetToken, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.resets[hash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeResets) MarkUsed(_ context.Context, id int64) error {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.resets {
		if t.ID == id && t.UsedAt == nil {
			now := time.Now()
			t.UsedAt = &now
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeSettings fakeStore

func (f *fakeSettings) Get(context.Context) (*api.MenuSettings, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	if s.settings == nil {
		return nil, common.ErrorNotFound
	}
	cp := *s.settings
	return &cp, nil
}

func (f *fakeSettings) Upsert(_ context.Context, m api.MenuSettings, _ int64) error {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	s.settings = &m
	return nil
}

type fakeMessages fakeStore

func (f *fakeMessages) Create(_ context.Context, m *models.Message) (*models.Message, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.id()
	m.CreatedAt = time.Now()
	cp := *m
	s.messages[m.ID] = &cp
	return m, nil
}

func (f *fakeMessages) Get(_ context.Context, id int64) (*models.Message, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMessages) ListForUser(_ context.Context, userID int64) ([]*models.Message, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Message
	for _, m := range s.messages {
		if m.RecipientID == userID || m.SenderID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeMessages) MarkRead(_ context.Context, id int64) error {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return common.ErrorNotFound
	}
	m.IsRead = true
	return nil
}

type fakeDocs fakeStore

func (f *fakeDocs) Create(_ context.Context, d *models.Document) (*models.Document, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	d.ID = s.id()
	d.UploadedAt = time.Now()
	cp := *d
	s.docs[d.ID] = &cp
	return d, nil
}

func (f *fakeDocs) Get(_ context.Context, id int64) (*models.Document, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocs) ListByUser(_ context.Context, userID int64) ([]*models.Document, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Document
	for _, d := range s.docs {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeDocs) Review(_ context.Context, id int64, status api.DocumentStatus, reason string, reviewerID int64) error {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return common.ErrorNotFound
	}
	d.Status = status
	d.RejectionReason = reason
	d.ReviewedBy = &reviewerID
	return nil
}

type fakeInvites fakeStore

func (f *fakeInvites) Create(_ context.Context, inv *models.Invitation) (*models.Invitation, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	inv.ID = s.id()
	s.invites = append(s.invites, inv)
	return inv, nil
}

type fakeContacts fakeStore

func (f *fakeContacts) Create(_ context.Context, c *models.Contact) (*models.Contact, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.contacts = append(s.contacts, c)
	return c, nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

type published struct {
	eventType string
	payload   any
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{eventType, payload})
	return p.err
}

type fakeCache struct {
	m           *api.MenuSettings
	getErr      error
	sets        int
	invalidated int
}

func (c *fakeCache) Get(context.Context) (*api.MenuSettings, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if c.m == nil {
		return nil, false, nil
	}
	cp := *c.m
	return &cp, true, nil
}

func (c *fakeCache) Set(_ context.Context, m api.MenuSettings) error {
	c.sets++
	c.m = &m
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidated++
	c.m = nil
	return nil
}

type fakeBlobs struct {
	puts map[string][]byte
	err  error
}

func (b *fakeBlobs) Put(_ context.Context, key, _ string, body io.ReadSeeker, _ int64) error {
	if b.err != nil {
		return b.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if b.puts == nil {
		b.puts = map[string][]byte{}
	}
	b.puts[key] = data
	return nil
}

func (b *fakeBlobs) PresignGet(_ context.Context, key string) (string, error) {
	return "https://s3.local/" + key + "?sig=1", nil
}
