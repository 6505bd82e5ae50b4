package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/focusgroup/internal/api"
)

// fakeAPI implements API with overridable funcs and per-method call counts.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	MeFn           func(ctx context.Context) (*api.User, error)
	SignUpFn       func(ctx context.Context, req api.SignUpRequest) (*api.AuthResponse, error)
	SignInFn       func(ctx context.Context, req api.SignInRequest) (*api.AuthResponse, error)
	GetMenuFn      func(ctx context.Context) (*api.MenuSettings, error)
	SaveMenuFn     func(ctx context.Context, m api.MenuSettings) error
	StatusFn       func(ctx context.Context) (*api.VerificationStatusResponse, error)
	MessagesFn     func(ctx context.Context) ([]api.Message, error)
	MarkReadFn     func(ctx context.Context, id int64) error
	ParticipantsFn func(ctx context.Context) ([]api.Participant, error)
	ReviewFn       func(ctx context.Context, id int64, req api.ReviewDocumentRequest) (*api.VerificationDocument, error)

	savedMenu []api.MenuSettings
}

func newFakeAPI() *fakeAPI { return &fakeAPI{calls: map[string]int{}} }

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Me(ctx context.Context) (*api.User, error) {
	f.hit("Me")
	if f.MeFn != nil {
		return f.MeFn(ctx)
	}
	return &api.User{ID: 1, Role: api.RoleClient}, nil
}

func (f *fakeAPI) SignUp(ctx context.Context, req api.SignUpRequest) (*api.AuthResponse, error) {
	f.hit("SignUp")
	return f.SignUpFn(ctx, req)
}

func (f *fakeAPI) SignIn(ctx context.Context, req api.SignInRequest) (*api.AuthResponse, error) {
	f.hit("SignIn")
	return f.SignInFn(ctx, req)
}

func (f *fakeAPI) ForgotPassword(context.Context, string) error {
	f.hit("ForgotPassword")
	return nil
}

func (f *fakeAPI) VerifyResetToken(_ context.Context, token string) (*api.VerifyResetTokenResponse, error) {
	f.hit("VerifyResetToken")
	return &api.VerifyResetTokenResponse{Valid: token == "good"}, nil
}

func (f *fakeAPI) ResetPassword(context.Context, string, string) error {
	f.hit("ResetPassword")
	return nil
}

func (f *fakeAPI) GetMenuSettings(ctx context.Context) (*api.MenuSettings, error) {
	f.hit("GetMenuSettings")
	if f.GetMenuFn != nil {
		return f.GetMenuFn(ctx)
	}
	m := api.DefaultMenuSettings()
	return &m, nil
}

func (f *fakeAPI) SaveMenuSettings(ctx context.Context, m api.MenuSettings) error {
	f.hit("SaveMenuSettings")
	f.mu.Lock()
	f.savedMenu = append(f.savedMenu, m)
	f.mu.Unlock()
	if f.SaveMenuFn != nil {
		return f.SaveMenuFn(ctx, m)
	}
	return nil
}

func (f *fakeAPI) VerificationStatus(ctx context.Context) (*api.VerificationStatusResponse, error) {
	f.hit("VerificationStatus")
	if f.StatusFn != nil {
		return f.StatusFn(ctx)
	}
	return &api.VerificationStatusResponse{Status: api.VerificationNotSubmitted}, nil
}

func (f *fakeAPI) UserVerificationStatus(_ context.Context, userID int64) (*api.VerificationStatusResponse, error) {
	f.hit("UserVerificationStatus")
	return &api.VerificationStatusResponse{
		Status:    api.VerificationPending,
		Documents: []api.VerificationDocument{{ID: userID * 10, Status: api.DocumentPending}},
	}, nil
}

func (f *fakeAPI) ReviewDocument(ctx context.Context, id int64, req api.ReviewDocumentRequest) (*api.VerificationDocument, error) {
	f.hit("ReviewDocument")
	if f.ReviewFn != nil {
		return f.ReviewFn(ctx, id, req)
	}
	return &api.VerificationDocument{ID: id, Status: req.Status, RejectionReason: req.RejectionReason}, nil
}

func (f *fakeAPI) ListMessages(ctx context.Context) ([]api.Message, error) {
	f.hit("ListMessages")
	if f.MessagesFn != nil {
		return f.MessagesFn(ctx)
	}
	return nil, nil
}

func (f *fakeAPI) MarkMessageRead(ctx context.Context, id int64) error {
	f.hit("MarkMessageRead")
	if f.MarkReadFn != nil {
		return f.MarkReadFn(ctx, id)
	}
	return nil
}

func (f *fakeAPI) ListParticipants(ctx context.Context) ([]api.Participant, error) {
	f.hit("ListParticipants")
	if f.ParticipantsFn != nil {
		return f.ParticipantsFn(ctx)
	}
	return []api.Participant{{ID: 2}}, nil
}

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	deletes int
}

func (f *fakeTokens) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeTokens) SetToken(_ context.Context, t string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = t
	return nil
}

func (f *fakeTokens) DeleteToken(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.deletes++
	return nil
}

type notice struct {
	Kind, Title, Message string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recordingNotifier) Success(title, msg string) {
	r.mu.Lock()
	r.notices = append(r.notices, notice{"success", title, msg})
	r.mu.Unlock()
}

func (r *recordingNotifier) Error(title, msg string) {
	r.mu.Lock()
	r.notices = append(r.notices, notice{"error", title, msg})
	r.mu.Unlock()
}

func (r *recordingNotifier) last() notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return notice{}
	}
	return r.notices[len(r.notices)-1]
}

type memRepo struct {
	mu   sync.Mutex
	data map[string]string
	gets int
}

func newMemRepo() *memRepo { return &memRepo{data: map[string]string{}} }

func (m *memRepo) Lookup(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memRepo) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memRepo) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]string{}
	return nil
}
