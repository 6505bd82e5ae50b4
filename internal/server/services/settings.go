package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/focusgroup/internal/access"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/auth"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/repomanager"
)

// SettingsCache is satisfied by cache.SettingsCache.
type SettingsCache interface {
	Get(ctx context.Context) (*api.MenuSettings, bool, error)
	Set(ctx context.Context, m api.MenuSettings) error
	Invalidate(ctx context.Context) error
}

type SettingsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       SettingsCache
	log         logging.Logger
}

func NewSettingsService(db *sql.DB, repomanager repomanager.RepositoryManager, cache SettingsCache, log logging.Logger) *SettingsService {
	return &SettingsService{db: db, repomanager: repomanager, cache: cache, log: log.With("module", "settings")}
}

// Get reads through the cache. Before the first save it returns the
// defaults. Cache failures are logged and bypassed.
func (s *SettingsService) Get(ctx context.Context) (api.MenuSettings, error) {
	m, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "settings cache read failed", "error", err)
	}
	if ok {
		return *m, nil
	}

	stored, err := s.repomanager.Settings(s.db).Get(ctx)
	var result api.MenuSettings
	switch {
	case err == nil:
		result = *stored
	case errors.Is(err, common.ErrorNotFound):
		result = api.DefaultMenuSettings()
	default:
		return api.MenuSettings{}, err
	}

	if err := s.cache.Set(ctx, result); err != nil {
		s.log.Warn(ctx, "settings cache write failed", "error", err)
	}
	return result, nil
}

// Replace stores m as a whole; the last writer wins. A disabled section is
// stored hidden.
func (s *SettingsService) Replace(ctx context.Context, caller auth.Identity, m api.MenuSettings) (api.MenuSettings, error) {
	if !access.CanEditSettings(caller.Role) {
		return api.MenuSettings{}, fail(common.ErrorForbidden, "Admin access required")
	}

	var blank []string
	m.Each(func(name string, sec *api.MenuSection) {
		sec.Title = strings.TrimSpace(sec.Title)
		if sec.Title == "" {
			blank = append(blank, name)
		}
		if !sec.Enabled {
			sec.Visible = false
		}
	})
	if len(blank) > 0 {
		return api.MenuSettings{}, common.NewFieldError("Section titles must not be empty", blank...)
	}

	if err := s.repomanager.Settings(s.db).Upsert(ctx, m, caller.UserID); err != nil {
		return api.MenuSettings{}, err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn(ctx, "settings cache invalidate failed", "error", err)
	}

	s.log.Info(ctx, "menu settings updated", "user_id", caller.UserID)
	return m, nil
}

// Seed writes the defaults when nothing is stored yet. It reports whether a
// row was written.
func (s *SettingsService) Seed(ctx context.Context) (bool, error) {
	repo := s.repomanager.Settings(s.db)
	if _, err := repo.Get(ctx); err == nil {
		return false, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}
	if err := repo.Upsert(ctx, api.DefaultMenuSettings(), 0); err != nil {
		return false, err
	}
	return true, nil
}
