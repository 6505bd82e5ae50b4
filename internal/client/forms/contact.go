package forms

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/services"
)

type ContactForm struct {
	api    API
	notify services.Notifier

	mu        sync.Mutex
	Values    api.ContactRequest
	submitted bool
}

func NewContactForm(a API, n services.Notifier) *ContactForm {
	return &ContactForm{api: a, notify: notifierOrNop(n)}
}

func (f *ContactForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitted {
		return ErrAlreadySubmitted
	}

	v := f.Values
	if err := RequireFields(
		Field{"name", v.Name},
		Field{"email", v.Email},
		Field{"message", v.Message},
	); err != nil {
		return fail(f.notify, err)
	}

	if err := f.api.SubmitContact(ctx, v); err != nil {
		return fail(f.notify, err)
	}
	f.submitted = true
	f.notify.Success("Message Sent", "We'll get back to you as soon as possible.")
	return nil
}

func (f *ContactForm) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}
