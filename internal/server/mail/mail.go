// Package mail sends transactional email through SMTP, Resend, or the log.
package mail

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focusgroup/internal/logging"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

const (
	ProviderLog    = "log"
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

type Options struct {
	Provider     string
	From         string
	SMTPAddr     string
	SMTPUser     string
	SMTPPassword string
	ResendAPIKey string
}

// New picks an implementation by provider name.
func New(o Options, log logging.Logger) (Mailer, error) {
	switch o.Provider {
	case ProviderLog, "":
		return NewLogMailer(log), nil
	case ProviderSMTP:
		return NewSMTPMailer(o.SMTPAddr, o.SMTPUser, o.SMTPPassword, o.From)
	case ProviderResend:
		if o.ResendAPIKey == "" {
			return nil, fmt.Errorf("mail: resend provider requires an API key")
		}
		return NewResendMailer(o.ResendAPIKey, o.From), nil
	default:
		return nil, fmt.Errorf("mail: unknown provider %q", o.Provider)
	}
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log.With("module", "mail")}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info(ctx, "mail", "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return nil
}
