package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/focusgroup/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/focusgroup/internal/common"
)

type ConsentChoice string

const (
	ConsentAccepted ConsentChoice = "accepted"
	ConsentRejected ConsentChoice = "rejected"
	ConsentCustom   ConsentChoice = "custom"
)

// ConsentCategories is stored as JSON next to the choice. Necessary is
// always true.
type ConsentCategories struct {
	Necessary   bool `json:"necessary"`
	Analytics   bool `json:"analytics"`
	Marketing   bool `json:"marketing"`
	Preferences bool `json:"preferences"`
}

// Consent remembers the cookie banner decision. The stored value is read
// once and kept in memory afterwards.
type Consent struct {
	repo metadata.Repository

	mu         sync.Mutex
	loaded     bool
	choice     ConsentChoice
	categories ConsentCategories
}

func NewConsent(repo metadata.Repository) *Consent {
	return &Consent{repo: repo}
}

func (c *Consent) load(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	choice, ok, err := c.repo.Lookup(ctx, common.ConsentStorageKey)
	if err != nil {
		return err
	}
	if ok {
		c.choice = ConsentChoice(choice)
	}
	raw, ok, err := c.repo.Lookup(ctx, common.ConsentCategoriesStorageKey)
	if err != nil {
		return err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &c.categories); err != nil {
			return fmt.Errorf("decode consent categories: %w", err)
		}
	}
	c.categories.Necessary = true
	c.loaded = true
	return nil
}

// ShouldShowBanner reports whether no choice has been recorded yet.
func (c *Consent) ShouldShowBanner(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return false, err
	}
	return c.choice == "", nil
}

func (c *Consent) Current(ctx context.Context) (ConsentChoice, ConsentCategories, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return "", ConsentCategories{}, err
	}
	return c.choice, c.categories, nil
}

func (c *Consent) AcceptAll(ctx context.Context) error {
	return c.save(ctx, ConsentAccepted, ConsentCategories{Analytics: true, Marketing: true, Preferences: true})
}

func (c *Consent) RejectAll(ctx context.Context) error {
	return c.save(ctx, ConsentRejected, ConsentCategories{})
}

func (c *Consent) SaveCustom(ctx context.Context, cats ConsentCategories) error {
	return c.save(ctx, ConsentCustom, cats)
}

func (c *Consent) save(ctx context.Context, choice ConsentChoice, cats ConsentCategories) error {
	cats.Necessary = true
	raw, err := json.Marshal(cats)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.repo.Set(ctx, common.ConsentStorageKey, string(choice)); err != nil {
		return err
	}
	if err := c.repo.Set(ctx, common.ConsentCategoriesStorageKey, string(raw)); err != nil {
		return err
	}
	c.choice, c.categories, c.loaded = choice, cats, true
	return nil
}
