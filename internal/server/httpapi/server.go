// Package httpapi exposes the services over a JSON HTTP API built on echo.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/auth"
	"github.com/dmitrijs2005/focusgroup/internal/server/services"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// uploadBodyLimit leaves room for the multipart envelope around the file.
var uploadBodyLimit = fmt.Sprintf("%dK", common.MaxDocumentSize/1024+512)

type UserService interface {
	SignUp(ctx context.Context, req api.SignUpRequest) (*api.AuthResponse, error)
	SignIn(ctx context.Context, req api.SignInRequest) (*api.AuthResponse, error)
	Me(ctx context.Context, userID int64) (*api.User, error)
	ListParticipants(ctx context.Context, caller auth.Identity) ([]api.Participant, error)
	ForgotPassword(ctx context.Context, email string) (*api.MessageResponse, error)
	VerifyResetToken(ctx context.Context, token string) (*api.VerifyResetTokenResponse, error)
	ResetPassword(ctx context.Context, req api.ResetPasswordRequest) (*api.MessageResponse, error)
}

type SettingsService interface {
	Get(ctx context.Context) (api.MenuSettings, error)
	Replace(ctx context.Context, caller auth.Identity, m api.MenuSettings) (api.MenuSettings, error)
}

type MessageService interface {
	List(ctx context.Context, userID int64) ([]api.Message, error)
	Send(ctx context.Context, caller auth.Identity, req api.SendMessageRequest) (*api.Message, error)
	MarkRead(ctx context.Context, caller auth.Identity, id int64) error
}

type VerificationService interface {
	Upload(ctx context.Context, caller auth.Identity, up services.Upload) (*api.VerificationDocument, error)
	Status(ctx context.Context, userID int64) (*api.VerificationStatusResponse, error)
	UserStatus(ctx context.Context, caller auth.Identity, userID int64) (*api.VerificationStatusResponse, error)
	Review(ctx context.Context, caller auth.Identity, id int64, req api.ReviewDocumentRequest) (*api.VerificationDocument, error)
	DocumentURL(ctx context.Context, caller auth.Identity, id int64) (string, error)
}

type InvitationService interface {
	Submit(ctx context.Context, req api.InvitationRequest) (*api.MessageResponse, error)
}

type ContactService interface {
	Submit(ctx context.Context, req api.ContactRequest) (*api.MessageResponse, error)
}

// Services bundles everything the handlers call.
type Services struct {
	Users        UserService
	Settings     SettingsService
	Messages     MessageService
	Verification VerificationService
	Invitations  InvitationService
	Contacts     ContactService
}

// RateLimit configures the per-IP limiter on /api/auth.
type RateLimit struct {
	PerMinute int
	Burst     int
}

type Server struct {
	address  string
	echo     *echo.Echo
	services Services
	issuer   *auth.Issuer
	logger   logging.Logger
}

func NewServer(address string, svc Services, issuer *auth.Issuer, limit RateLimit, l logging.Logger) *Server {
	s := &Server{
		address:  address,
		echo:     echo.New(),
		services: svc,
		issuer:   issuer,
		logger:   l.With("module", "http_server"),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError
	s.routes(newIPRateLimiter(limit.PerMinute, limit.Burst))
	return s
}

func (s *Server) routes(limiter *ipRateLimiter) {
	e := s.echo
	e.Use(s.requestLogger())
	e.Use(echomw.Recover())

	e.GET("/healthz", health)

	a := e.Group("/api/auth", limiter.middleware)
	a.POST("/signup", s.signUp)
	a.POST("/signin", s.signIn)
	a.GET("/me", s.me, s.authenticate)
	a.POST("/forgot-password", s.forgotPassword)
	a.GET("/verify-reset-token/:token", s.verifyResetToken)
	a.POST("/reset-password", s.resetPassword)

	e.GET("/api/admin/menu-settings", s.getMenuSettings)
	e.POST("/api/admin/menu-settings", s.replaceMenuSettings, s.authenticate, requireRole(api.RoleAdmin))

	e.POST("/api/invitation/waitlist", s.submitInvitation)
	e.POST("/api/contact", s.submitContact)

	v := e.Group("/api/verification", s.authenticate)
	v.POST("/upload", s.uploadDocument, echomw.BodyLimit(uploadBodyLimit))
	v.GET("/status", s.verificationStatus)
	v.GET("/users/:id", s.userVerificationStatus, requireRole(api.RoleAdmin, api.RoleManager))
	v.POST("/documents/:id/review", s.reviewDocument, requireRole(api.RoleAdmin, api.RoleManager))
	v.GET("/documents/:id/url", s.documentURL, requireRole(api.RoleAdmin, api.RoleManager))

	m := e.Group("/api/messages", s.authenticate)
	m.GET("", s.listMessages)
	m.POST("/send", s.sendMessage)
	m.POST("/:id/read", s.markMessageRead)

	e.GET("/api/manager/participants", s.listParticipants, s.authenticate, requireRole(api.RoleAdmin, api.RoleManager))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(sctx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
