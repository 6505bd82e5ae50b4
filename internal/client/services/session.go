package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/client"
	"github.com/dmitrijs2005/focusgroup/internal/client/querycache"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
)

// Session owns the signed-in identity. The current user is read through the
// query cache; a missing token, a 401 or an unreachable server all resolve
// to "signed out" rather than an error.
type Session struct {
	api    API
	tokens TokenStore
	cache  *querycache.Cache
	log    logging.Logger
}

// UnauthorizedHookRegistrar is satisfied by *client.HTTPClient.
type UnauthorizedHookRegistrar interface {
	SetUnauthorizedHandler(fn func(ctx context.Context))
}

func NewSession(a API, tokens TokenStore, cache *querycache.Cache, log logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	return &Session{api: a, tokens: tokens, cache: cache, log: log.With("module", "session")}
}

// Attach registers the session as the handler for 401 responses on any
// request.
func (s *Session) Attach(r UnauthorizedHookRegistrar) {
	r.SetUnauthorizedHandler(s.handleUnauthorized)
}

func (s *Session) handleUnauthorized(ctx context.Context) {
	if err := s.tokens.DeleteToken(ctx); err != nil {
		s.log.Warn(ctx, "failed to drop rejected token", "error", err)
	}
	s.cache.Clear()
}

// Init rehydrates the persisted token.
func (s *Session) Init(ctx context.Context) error {
	if _, err := s.tokens.Token(ctx); err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user or nil. Only local store failures
// are returned as errors.
func (s *Session) CurrentUser(ctx context.Context) (*api.User, error) {
	if v, ok := s.cache.Peek(common.QueryKeyCurrentUser); ok {
		u, _ := v.(*api.User)
		return u, nil
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	u, err := querycache.Get(ctx, s.cache, common.QueryKeyCurrentUser, s.api.Me)
	switch {
	case err == nil:
		return u, nil
	case client.IsUnauthorized(err):
		if err := s.tokens.DeleteToken(ctx); err != nil {
			return nil, fmt.Errorf("delete token: %w", err)
		}
		return nil, nil
	case errors.Is(err, context.Canceled):
		return nil, err
	default:
		s.log.Warn(ctx, "current user unavailable, treating as signed out", "error", err)
		return nil, nil
	}
}

// Refresh discards the cached user and fetches it again.
func (s *Session) Refresh(ctx context.Context) (*api.User, error) {
	s.cache.Invalidate(common.QueryKeyCurrentUser)
	return s.CurrentUser(ctx)
}

func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	u, err := s.CurrentUser(ctx)
	return u != nil, err
}

func (s *Session) SignUp(ctx context.Context, req api.SignUpRequest) (*api.User, error) {
	resp, err := s.api.SignUp(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

func (s *Session) SignIn(ctx context.Context, req api.SignInRequest) (*api.User, error) {
	resp, err := s.api.SignIn(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

// establish persists the token before seeding the cache, so the next request
// already carries it.
func (s *Session) establish(ctx context.Context, resp *api.AuthResponse) (*api.User, error) {
	if err := s.tokens.SetToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	u := resp.User
	s.cache.Set(common.QueryKeyCurrentUser, &u)
	s.log.Info(ctx, "signed in", "user_id", u.ID, "role", u.Role)
	return &u, nil
}

// SignOut drops the token and every cached query.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.tokens.DeleteToken(ctx); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	s.cache.Clear()
	s.log.Info(ctx, "signed out")
	return nil
}

func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	return s.api.ForgotPassword(ctx, email)
}

func (s *Session) VerifyResetToken(ctx context.Context, token string) (*api.VerifyResetTokenResponse, error) {
	return s.api.VerifyResetToken(ctx, token)
}

func (s *Session) ResetPassword(ctx context.Context, token, password string) error {
	return s.api.ResetPassword(ctx, token, password)
}
