// Package seed writes the initial data a fresh deployment needs: default
// menu settings and a first admin account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var bcryptCost = bcrypt.DefaultCost

// SettingsSeeder is implemented by services.SettingsService.
type SettingsSeeder interface {
	Seed(ctx context.Context) (bool, error)
}

// SeedMenuSettings stores the default menu settings unless a row exists.
func SeedMenuSettings(ctx context.Context, s SettingsSeeder, log logging.Logger) error {
	written, err := s.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed menu settings: %w", err)
	}
	if written {
		log.Info(ctx, "menu settings seeded with defaults")
	} else {
		log.Info(ctx, "menu settings already present, left unchanged")
	}
	return nil
}

type AdminOptions struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (o *AdminOptions) validate() error {
	o.Email = strings.ToLower(strings.TrimSpace(o.Email))
	if a, err := mail.ParseAddress(o.Email); err != nil || a.Address != o.Email {
		return common.NewFieldError("a valid -email is required", "email")
	}
	if len(o.Password) < common.MinPasswordLength {
		return common.NewFieldError(fmt.Sprintf("-password must be at least %d characters", common.MinPasswordLength), "password")
	}
	if strings.TrimSpace(o.FirstName) == "" {
		o.FirstName = "Admin"
	}
	return nil
}

// SeedAdmin creates an admin account when the email is unused. It reports
// whether an account was created.
func SeedAdmin(ctx context.Context, repo users.Repository, o AdminOptions, log logging.Logger) (bool, error) {
	if err := o.validate(); err != nil {
		return false, err
	}

	if _, err := repo.GetByEmail(ctx, o.Email); err == nil {
		log.Info(ctx, "admin already exists, left unchanged", "email", o.Email)
		return false, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{
		Email:              o.Email,
		PasswordHash:       hash,
		FirstName:          strings.TrimSpace(o.FirstName),
		LastName:           strings.TrimSpace(o.LastName),
		Role:               api.RoleAdmin,
		VerificationStatus: api.VerificationVerified,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	log.Info(ctx, "admin created", "user_id", u.ID, "email", u.Email)
	return true, nil
}
