package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/focusgroup/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/focusgroup/internal/common"
)

// TokenStore persists the bearer token and keeps a copy in memory once it
// has been read. It satisfies client.TokenSource.
type TokenStore struct {
	repo metadata.Repository

	mu     sync.RWMutex
	loaded bool
	token  string
}

func NewTokenStore(repo metadata.Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Token returns the stored token, or "" when signed out.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.loaded {
		t := s.token
		s.mu.RUnlock()
		return t, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.token, nil
	}
	v, _, err := s.repo.Lookup(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	s.token, s.loaded = v, true
	return v, nil
}

func (s *TokenStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Set(ctx, common.TokenStorageKey, token); err != nil {
		return err
	}
	s.token, s.loaded = token, true
	return nil
}

func (s *TokenStore) DeleteToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		return err
	}
	s.token, s.loaded = "", true
	return nil
}
