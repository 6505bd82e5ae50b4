package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/client"
	"github.com/dmitrijs2005/focusgroup/internal/client/querycache"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
)

var (
	ErrBusy             = errors.New("operation already in progress")
	ErrNotLoaded        = errors.New("menu settings not loaded")
	ErrUnknownSection   = errors.New("unknown menu section")
	ErrVisibilityLocked = errors.New("section is disabled; enable it before changing visibility")
)

const (
	StatusDisabled = "Disabled"
	StatusVisible  = "Visible"
	StatusHidden   = "Hidden"
)

// MenuEditor holds a local draft of the landing page menu settings. The
// draft is seeded from the first successful fetch and only changes through
// the editor's own methods until it is saved or discarded. Clearing the
// shared cache, as sign-out does, drops the draft.
type MenuEditor struct {
	api    API
	cache  *querycache.Cache
	notify Notifier
	log    logging.Logger

	mu      sync.Mutex
	loaded  bool
	gen     uint64
	draft   api.MenuSettings
	fetched api.MenuSettings
	saving  bool
}

func NewMenuEditor(a API, cache *querycache.Cache, n Notifier, log logging.Logger) *MenuEditor {
	if log == nil {
		log = logging.Nop()
	}
	return &MenuEditor{api: a, cache: cache, notify: n, log: log.With("module", "menu")}
}

func (e *MenuEditor) fetch(ctx context.Context) (api.MenuSettings, error) {
	m, err := querycache.Get(ctx, e.cache, common.QueryKeyMenuSettings, e.api.GetMenuSettings)
	if err != nil {
		return api.MenuSettings{}, err
	}
	return *m, nil
}

// ready reports whether the draft belongs to the current cache generation.
// Callers hold e.mu.
func (e *MenuEditor) ready() bool {
	return e.loaded && e.gen == e.cache.Generation()
}

// Load fetches the settings. Only the first successful call after a cache
// Clear seeds the draft.
func (e *MenuEditor) Load(ctx context.Context) error {
	gen := e.cache.Generation()
	m, err := e.fetch(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.cache.Generation() {
		return ErrNotLoaded
	}
	e.fetched = m
	if !e.ready() {
		e.draft = m
		e.gen = gen
		e.loaded = true
	}
	return nil
}

// Draft returns a copy of the current draft.
func (e *MenuEditor) Draft() (api.MenuSettings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready() {
		return api.MenuSettings{}, ErrNotLoaded
	}
	return e.draft, nil
}

func (e *MenuEditor) section(name string) (*api.MenuSection, error) {
	if !e.ready() {
		return nil, ErrNotLoaded
	}
	s, ok := e.draft.Section(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	return s, nil
}

// SetEnabled flips one section on or off. Disabling also hides it; enabling
// leaves it hidden.
func (e *MenuEditor) SetEnabled(name string, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.section(name)
	if err != nil {
		return err
	}
	s.Enabled = enabled
	if !enabled {
		s.Visible = false
	}
	return nil
}

func (e *MenuEditor) SetVisible(name string, visible bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.section(name)
	if err != nil {
		return err
	}
	if !s.Enabled {
		return ErrVisibilityLocked
	}
	s.Visible = visible
	return nil
}

func (e *MenuEditor) ToggleEnabled(name string) error {
	e.mu.Lock()
	s, err := e.section(name)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	next := !s.Enabled
	e.mu.Unlock()
	return e.SetEnabled(name, next)
}

func (e *MenuEditor) ToggleVisible(name string) error {
	e.mu.Lock()
	s, err := e.section(name)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	next := !s.Visible
	e.mu.Unlock()
	return e.SetVisible(name, next)
}

func (e *MenuEditor) setAll(enabled, visible bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready() {
		return ErrNotLoaded
	}
	e.draft.Each(func(_ string, s *api.MenuSection) {
		s.Enabled = enabled
		s.Visible = visible
	})
	return nil
}

// EnableAll turns every section on and makes it visible. Nothing is sent
// until Save.
func (e *MenuEditor) EnableAll() error { return e.setAll(true, true) }

// DisableAll turns every section off.
func (e *MenuEditor) DisableAll() error { return e.setAll(false, false) }

// StatusText is the label shown next to a section.
func (e *MenuEditor) StatusText(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.section(name)
	if err != nil {
		return "", err
	}
	return SectionStatus(*s), nil
}

func SectionStatus(s api.MenuSection) string {
	switch {
	case !s.Enabled:
		return StatusDisabled
	case s.Visible:
		return StatusVisible
	default:
		return StatusHidden
	}
}

// Preview lists the titles the landing page would render for the draft.
func (e *MenuEditor) Preview() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready() {
		return nil, ErrNotLoaded
	}
	return VisibleTitles(e.draft), nil
}

// VisibleTitles returns titles of sections that are enabled and visible, in
// display order.
func VisibleTitles(m api.MenuSettings) []string {
	titles := make([]string, 0, len(api.SectionNames))
	m.Each(func(_ string, s *api.MenuSection) {
		if s.Enabled && s.Visible {
			titles = append(titles, s.Title)
		}
	})
	return titles
}

func (e *MenuEditor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready() && e.draft != e.fetched
}

// Discard re-seeds the draft from the settings last fetched.
func (e *MenuEditor) Discard() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready() {
		return ErrNotLoaded
	}
	e.draft = e.fetched
	return nil
}

func (e *MenuEditor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Save sends the whole draft. On failure the draft is kept as is.
func (e *MenuEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	if !e.ready() {
		e.mu.Unlock()
		return ErrNotLoaded
	}
	if e.saving {
		e.mu.Unlock()
		return ErrBusy
	}
	e.saving = true
	draft := e.draft
	e.mu.Unlock()

	err := e.api.SaveMenuSettings(ctx, draft)

	e.mu.Lock()
	e.saving = false
	if err == nil {
		e.fetched = draft
	}
	e.mu.Unlock()

	if err != nil {
		e.log.Warn(ctx, "menu settings save failed", "error", err)
		if e.notify != nil {
			e.notify.Error("Error", client.Message(err))
		}
		return err
	}

	e.cache.Invalidate(common.QueryKeyMenuSettings)
	e.log.Info(ctx, "menu settings saved")
	if e.notify != nil {
		e.notify.Success("Success", "Menu settings updated successfully")
	}
	return nil
}
