package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/focusgroup/internal/access"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/client"
	"github.com/dmitrijs2005/focusgroup/internal/client/forms"
	"github.com/dmitrijs2005/focusgroup/internal/common"
)

// Test seams for interactive input.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errNotSignedIn = errors.New("not signed in; use 'login' first")

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) Register(ctx context.Context) error {
	var req api.SignUpRequest
	var err error
	if req.FirstName, err = a.ask("First name"); err != nil {
		return err
	}
	if req.LastName, err = a.ask("Last name"); err != nil {
		return err
	}
	if req.Email, err = a.ask("Email"); err != nil {
		return err
	}
	role, err := a.ask("Role (client/participant) [client]")
	if err != nil {
		return err
	}
	if role != "" {
		req.Role = api.Role(role)
		if !access.SelfAssignable(req.Role) {
			return common.NewFieldError("role must be client or participant", "role")
		}
	}
	if req.Password, err = a.askPassword("Password"); err != nil {
		return err
	}
	if len(req.Password) < forms.MinPasswordLength {
		return common.NewFieldError("password must be at least 8 characters", "password")
	}

	u, err := a.session.SignUp(ctx, req)
	if err != nil {
		return errors.New(client.Message(err))
	}
	a.printf("Welcome, %s! Signed in as %s.\n", u.FirstName, u.Role)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Password")
	if err != nil {
		return err
	}

	u, err := a.session.SignIn(ctx, api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return errors.New(client.Message(err))
	}
	a.printf("Signed in as %s (%s)\n", u.Email, u.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	a.println("Signed out")
	return nil
}

// requireUser returns the signed-in user or errNotSignedIn.
func (a *App) requireUser(ctx context.Context) (*api.User, error) {
	u, err := a.session.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errNotSignedIn
	}
	return u, nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	a.printf("id: %d\nname: %s %s\nemail: %s\nrole: %s\nverification: %s\n",
		u.ID, u.FirstName, u.LastName, u.Email, u.Role, u.VerificationStatus)
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	_ = forms.NewPasswordResetForm(a.api, a.notifier()).RequestReset(ctx, email)
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	token, err := a.ask("Reset token")
	if err != nil {
		return err
	}
	res, err := a.session.VerifyResetToken(ctx, token)
	if err != nil {
		return errors.New(client.Message(err))
	}
	if !res.Valid {
		a.println("This reset link is invalid or has expired.")
		return nil
	}

	password, err := a.askPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm password")
	if err != nil {
		return err
	}
	_ = forms.NewPasswordResetForm(a.api, a.notifier()).Reset(ctx, token, password, confirm)
	return nil
}
