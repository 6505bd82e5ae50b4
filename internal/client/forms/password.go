package forms

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/client/services"
	"github.com/dmitrijs2005/focusgroup/internal/common"
)

const MinPasswordLength = common.MinPasswordLength

type PasswordResetForm struct {
	api    API
	notify services.Notifier
}

func NewPasswordResetForm(a API, n services.Notifier) *PasswordResetForm {
	return &PasswordResetForm{api: a, notify: notifierOrNop(n)}
}

// RequestReset asks the server to mail a reset link. The server answers
// the same way whether or not the address is registered.
func (f *PasswordResetForm) RequestReset(ctx context.Context, email string) error {
	if err := RequireFields(Field{"email", email}); err != nil {
		return fail(f.notify, err)
	}
	if err := f.api.ForgotPassword(ctx, email); err != nil {
		return fail(f.notify, err)
	}
	f.notify.Success("Check Your Email", "If an account exists for that address, a reset link has been sent")
	return nil
}

func (f *PasswordResetForm) Reset(ctx context.Context, token, password, confirm string) error {
	if err := RequireFields(
		Field{"token", token},
		Field{"password", password},
		Field{"confirmPassword", confirm},
	); err != nil {
		return fail(f.notify, err)
	}
	if len(password) < MinPasswordLength {
		return fail(f.notify, common.NewFieldError(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength), "password"))
	}
	if password != confirm {
		return fail(f.notify, common.NewFieldError("Passwords do not match", "confirmPassword"))
	}
	if err := f.api.ResetPassword(ctx, token, password); err != nil {
		return fail(f.notify, err)
	}
	f.notify.Success("Password Reset", "You can now sign in with your new password")
	return nil
}
