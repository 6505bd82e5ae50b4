// Package services holds the dashboard's application services: the session,
// the admin menu editor, cached dashboard reads, and cookie consent. Each one
// talks to the server through the API interface and shares one query cache.
package services

import (
	"context"

	"github.com/dmitrijs2005/focusgroup/internal/api"
)

// API is the subset of the HTTP client the services depend on.
// *client.HTTPClient implements it.
type API interface {
	Me(ctx context.Context) (*api.User, error)
	SignUp(ctx context.Context, req api.SignUpRequest) (*api.AuthResponse, error)
	SignIn(ctx context.Context, req api.SignInRequest) (*api.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) (*api.VerifyResetTokenResponse, error)
	ResetPassword(ctx context.Context, token, password string) error

	GetMenuSettings(ctx context.Context) (*api.MenuSettings, error)
	SaveMenuSettings(ctx context.Context, m api.MenuSettings) error

	VerificationStatus(ctx context.Context) (*api.VerificationStatusResponse, error)
	UserVerificationStatus(ctx context.Context, userID int64) (*api.VerificationStatusResponse, error)
	ReviewDocument(ctx context.Context, id int64, req api.ReviewDocumentRequest) (*api.VerificationDocument, error)
	ListMessages(ctx context.Context) ([]api.Message, error)
	MarkMessageRead(ctx context.Context, id int64) error
	ListParticipants(ctx context.Context) ([]api.Participant, error)
}

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context) error
}

// Notifier shows transient feedback to the user.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}
