package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/access"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/dbx"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/auth"
	"github.com/dmitrijs2005/focusgroup/internal/server/config"
	"github.com/dmitrijs2005/focusgroup/internal/server/events"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

var bcryptCost = bcrypt.DefaultCost

// dummyHash is compared against on unknown emails so sign-in takes the same
// time whether or not the account exists.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("focusgroup-timing-equaliser"), bcryptCost)
	return h
})

const resetTokenBytes = 32

const (
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidResetToken  = "Invalid or expired reset token"
	msgForgotPassword     = "If an account exists for that email, a reset link has been sent"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	events      events.Publisher
	config      *config.Config
	log         logging.Logger
	now         func() time.Time
}

func NewUserService(db *sql.DB, repomanager repomanager.RepositoryManager, issuer *auth.Issuer,
	publisher events.Publisher, config *config.Config, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: repomanager,
		issuer:      issuer,
		events:      publisher,
		config:      config,
		log:         log.With("module", "users"),
		now:         time.Now,
	}
}

func (s *UserService) SignUp(ctx context.Context, req api.SignUpRequest) (*api.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if err := required(
		field{"email", email},
		field{"password", req.Password},
		field{"firstName", req.FirstName},
		field{"lastName", req.LastName},
	); err != nil {
		return nil, err
	}
	if !validEmail(email) {
		return nil, common.NewFieldError("Please enter a valid email address", "email")
	}
	if len(req.Password) < common.MinPasswordLength {
		return nil, common.NewFieldError(fmt.Sprintf("Password must be at least %d characters", common.MinPasswordLength), "password")
	}

	role := req.Role
	if role == "" {
		role = api.RoleClient
	}
	if !access.SelfAssignable(role) {
		return nil, common.NewFieldError("Role must be client or participant", "role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Email:              email,
		PasswordHash:       hash,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Role:               role,
		VerificationStatus: api.VerificationNotSubmitted,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fail(common.ErrorAlreadyExists, "An account with this email already exists")
		}
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return s.authResponse(u, "Account created successfully")
}

func (s *UserService) SignIn(ctx context.Context, req api.SignInRequest) (*api.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if err := required(field{"email", email}, field{"password", req.Password}); err != nil {
		return nil, err
	}

	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(req.Password))
			return nil, fail(common.ErrorUnauthorized, msgInvalidCredentials)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)); err != nil {
		return nil, fail(common.ErrorUnauthorized, msgInvalidCredentials)
	}

	return s.authResponse(u, "Signed in successfully")
}

func (s *UserService) authResponse(u *models.User, msg string) (*api.AuthResponse, error) {
	token, err := s.issuer.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &api.AuthResponse{User: u.Public(), Token: token, Message: msg}, nil
}

// Me resolves the token's subject. A deleted account reads as unauthorized.
func (s *UserService) Me(ctx context.Context, userID int64) (*api.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fail(common.ErrorUnauthorized, "User not found")
		}
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *UserService) ListParticipants(ctx context.Context, caller auth.Identity) ([]api.Participant, error) {
	if !access.CanListParticipants(caller.Role) {
		return nil, fail(common.ErrorForbidden, "Insufficient permissions")
	}

	list, err := s.repomanager.Users(s.db).ListByRole(ctx, api.RoleParticipant)
	if err != nil {
		return nil, err
	}
	result := make([]api.Participant, 0, len(list))
	for _, u := range list {
		result = append(result, u.Participant())
	}
	return result, nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ForgotPassword answers the same way whether or not the email is known.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (*api.MessageResponse, error) {
	email = normalizeEmail(email)
	if err := required(field{"email", email}); err != nil {
		return nil, err
	}
	ok := &api.MessageResponse{Message: msgForgotPassword}

	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ok, nil
		}
		return nil, err
	}

	token, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("reset token: %w", err)
	}
	expires := s.now().Add(s.config.ResetTokenTTL)
	if err := s.repomanager.ResetTokens(s.db).Create(ctx, u.ID, hashResetToken(token), expires); err != nil {
		return nil, err
	}

	payload := events.PasswordResetPayload{
		Email:     u.Email,
		FirstName: u.FirstName,
		ResetURL:  strings.TrimRight(s.config.PublicBaseURL, "/") + "/reset-password?token=" + url.QueryEscape(token),
		ExpiresAt: expires,
	}
	if err := s.events.Publish(ctx, events.TypePasswordReset, payload); err != nil {
		s.log.Error(ctx, "publish password reset failed", "user_id", u.ID, "error", err)
	}
	s.log.Info(ctx, "password reset requested", "user_id", u.ID)
	return ok, nil
}

// VerifyResetToken never fails on a bad token; it reports Valid=false.
func (s *UserService) VerifyResetToken(ctx context.Context, token string) (*api.VerifyResetTokenResponse, error) {
	if token == "" {
		return &api.VerifyResetTokenResponse{Valid: false}, nil
	}

	t, err := s.repomanager.ResetTokens(s.db).FindByHash(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &api.VerifyResetTokenResponse{Valid: false}, nil
		}
		return nil, err
	}
	if !t.Usable(s.now()) {
		return &api.VerifyResetTokenResponse{Valid: false}, nil
	}

	u, err := s.repomanager.Users(s.db).GetByID(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &api.VerifyResetTokenResponse{Valid: false}, nil
		}
		return nil, err
	}
	return &api.VerifyResetTokenResponse{Valid: true, Email: u.Email}, nil
}

// ResetPassword consumes the token and sets the new password in one
// transaction. A token works once.
func (s *UserService) ResetPassword(ctx context.Context, req api.ResetPasswordRequest) (*api.MessageResponse, error) {
	if err := required(field{"token", req.Token}, field{"password", req.Password}); err != nil {
		return nil, err
	}
	if len(req.Password) < common.MinPasswordLength {
		return nil, common.NewFieldError(fmt.Sprintf("Password must be at least %d characters", common.MinPasswordLength), "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var userID int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tokens := s.repomanager.ResetTokens(tx)

		t, err := tokens.FindByHash(ctx, hashResetToken(req.Token))
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fail(common.ErrorValidation, msgInvalidResetToken)
			}
			return err
		}
		if !t.Usable(s.now()) {
			return fail(common.ErrorValidation, msgInvalidResetToken)
		}
		// MarkUsed only matches unused rows, so a concurrent reset loses here.
		if err := tokens.MarkUsed(ctx, t.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fail(common.ErrorValidation, msgInvalidResetToken)
			}
			return err
		}
		userID = t.UserID
		return s.repomanager.Users(tx).UpdatePassword(ctx, t.UserID, hash)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "password reset", "user_id", userID)
	return &api.MessageResponse{Message: "Password has been reset successfully"}, nil
}
