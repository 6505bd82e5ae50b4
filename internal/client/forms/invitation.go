package forms

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/services"
)

// InvitationForm is the waitlist application.
type InvitationForm struct {
	api    API
	notify services.Notifier

	mu        sync.Mutex
	Values    api.InvitationRequest
	submitted bool
}

func NewInvitationForm(a API, n services.Notifier) *InvitationForm {
	return &InvitationForm{api: a, notify: notifierOrNop(n)}
}

func (f *InvitationForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitted {
		return ErrAlreadySubmitted
	}

	v := f.Values
	if err := RequireFields(
		Field{"firstName", v.FirstName},
		Field{"lastName", v.LastName},
		Field{"email", v.Email},
		Field{"company", v.Company},
	); err != nil {
		return fail(f.notify, err)
	}

	v.Status = api.InvitationPending
	if err := f.api.SubmitWaitlist(ctx, v); err != nil {
		return fail(f.notify, err)
	}
	f.submitted = true
	f.notify.Success("Application Submitted", "Thank you for your interest. We'll be in touch soon.")
	return nil
}

// Submitted reports whether the form reached its terminal state.
func (f *InvitationForm) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}
