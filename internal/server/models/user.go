// Package models holds the server's persistent records and their mapping to
// the public JSON contract in internal/api.
package models

import (
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/api"
)

type User struct {
	ID                 int64
	Email              string
	PasswordHash       []byte
	FirstName          string
	LastName           string
	Role               api.Role
	VerificationStatus api.VerificationStatus
	ProfileImageURL    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Public strips credentials.
func (u *User) Public() api.User {
	return api.User{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
		ProfileImageURL:    u.ProfileImageURL,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (u *User) Participant() api.Participant {
	return api.Participant{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		VerificationStatus: u.VerificationStatus,
	}
}

// ResetToken is a single-use password reset grant. Only the SHA-256 of the
// token sent by email is stored.
type ResetToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable reports whether the token is unused and unexpired at now.
func (t *ResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
