package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// sendMail is a seam for tests.
var sendMail = smtp.SendMail

type SMTPMailer struct {
	addr string
	host string
	auth smtp.Auth
	from string
}

// NewSMTPMailer authenticates with PLAIN only when user is set, which suits
// local catchers like MailHog.
func NewSMTPMailer(addr, user, password, from string) (*SMTPMailer, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("mail: bad smtp address %q: %w", addr, err)
	}
	m := &SMTPMailer{addr: addr, host: host, from: from}
	if user != "" {
		m.auth = smtp.PlainAuth("", user, password, host)
	}
	return m, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := msg.Text
	contentType := `text/plain; charset="utf-8"`
	if msg.HTML != "" {
		body = msg.HTML
		contentType = `text/html; charset="utf-8"`
	}
	raw := strings.Join([]string{
		"From: " + m.from,
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType,
		"",
		body,
	}, "\r\n")

	errCh := make(chan error, 1)
	go func() {
		errCh <- sendMail(m.addr, m.auth, envelopeAddress(m.from), []string{msg.To}, []byte(raw))
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// envelopeAddress strips a display name: "Name <a@b>" becomes "a@b".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return from[i+1 : j]
		}
	}
	return from
}
