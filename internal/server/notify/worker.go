// Package notify turns domain events into email.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/events"
	"github.com/dmitrijs2005/focusgroup/internal/server/mail"
)

type Worker struct {
	mailer     mail.Mailer
	operations string
	log        logging.Logger
}

// NewWorker sends applicant and contact notifications to operations, the
// team inbox.
func NewWorker(mailer mail.Mailer, operations string, log logging.Logger) *Worker {
	return &Worker{mailer: mailer, operations: operations, log: log.With("module", "notify")}
}

// Register subscribes the worker to every event it handles.
func (w *Worker) Register(s events.Subscriber) {
	s.Subscribe(events.TypePasswordReset, w.passwordReset)
	s.Subscribe(events.TypeInvitationSubmitted, w.invitationSubmitted)
	s.Subscribe(events.TypeContactSubmitted, w.contactSubmitted)
}

func (w *Worker) passwordReset(ctx context.Context, ev events.Event) error {
	var p events.PasswordResetPayload
	if err := ev.Decode(&p); err != nil {
		return err
	}

	name := p.FirstName
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("Hi %s,\n\nUse the link below to choose a new password. It expires at %s.\n\n%s\n\nIf you did not ask for this, ignore this email.\n",
		name, p.ExpiresAt.UTC().Format("2006-01-02 15:04 MST"), p.ResetURL)

	return w.send(ctx, ev.Type, mail.Message{To: p.Email, Subject: "Reset your password", Text: text})
}

func (w *Worker) invitationSubmitted(ctx context.Context, ev events.Event) error {
	var p events.InvitationPayload
	if err := ev.Decode(&p); err != nil {
		return err
	}

	if err := w.send(ctx, ev.Type, mail.Message{
		To:      p.Email,
		Subject: "You're on the waitlist",
		Text:    fmt.Sprintf("Hi %s,\n\nThanks for your interest. We will be in touch soon.\n", p.FirstName),
	}); err != nil {
		return err
	}
	if w.operations == "" {
		return nil
	}
	return w.send(ctx, ev.Type, mail.Message{
		To:      w.operations,
		Subject: "New waitlist application: " + p.Company,
		Text:    fmt.Sprintf("%s %s <%s> from %s joined the waitlist.\n", p.FirstName, p.LastName, p.Email, p.Company),
	})
}

func (w *Worker) contactSubmitted(ctx context.Context, ev events.Event) error {
	var p events.ContactPayload
	if err := ev.Decode(&p); err != nil {
		return err
	}
	if w.operations == "" {
		w.log.Warn(ctx, "contact message dropped, no operations inbox", "from", p.Email)
		return nil
	}

	subject := strings.TrimSpace(p.Subject)
	if subject == "" {
		subject = "(no subject)"
	}
	return w.send(ctx, ev.Type, mail.Message{
		To:      w.operations,
		Subject: "Contact form: " + subject,
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s\n", p.Name, p.Email, p.Message),
	})
}

func (w *Worker) send(ctx context.Context, eventType string, m mail.Message) error {
	if err := w.mailer.Send(ctx, m); err != nil {
		w.log.Error(ctx, "mail failed", "event", eventType, "to", m.To, "error", err)
		return err
	}
	w.log.Info(ctx, "mail sent", "event", eventType, "to", m.To)
	return nil
}
