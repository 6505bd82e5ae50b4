package mail

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsProvider(t *testing.T) {
	log := logging.Nop()

	m, err := New(Options{}, log)
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	m, err = New(Options{Provider: ProviderSMTP, SMTPAddr: "localhost:1025"}, log)
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = New(Options{Provider: ProviderResend, ResendAPIKey: "re_test"}, log)
	require.NoError(t, err)
	assert.IsType(t, &ResendMailer{}, m)

	_, err = New(Options{Provider: ProviderResend}, log)
	assert.Error(t, err)

	_, err = New(Options{Provider: "pigeon"}, log)
	assert.ErrorContains(t, err, "unknown provider")

	_, err = New(Options{Provider: ProviderSMTP, SMTPAddr: "no-port"}, log)
	assert.ErrorContains(t, err, "bad smtp address")
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(logging.New(&buf, "json", "info"))

	require.NoError(t, m.Send(context.Background(), Message{To: "a@b.c", Subject: "Hi", Text: "body"}))
	assert.Contains(t, buf.String(), `"to":"a@b.c"`)
	assert.Contains(t, buf.String(), `"module":"mail"`)
}

func TestSMTPMailer_Send(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	m, err := NewSMTPMailer("mail.local:25", "", "", "Focus Group <no-reply@fg.local>")
	require.NoError(t, err)
	require.NoError(t, m.Send(context.Background(), Message{To: "ann@example.com", Subject: "Reset", Text: "link"}))

	assert.Equal(t, "mail.local:25", gotAddr)
	assert.Nil(t, gotAuth)
	assert.Equal(t, "no-reply@fg.local", gotFrom)
	assert.Equal(t, []string{"ann@example.com"}, gotTo)
	raw := string(gotMsg)
	assert.True(t, strings.HasPrefix(raw, "From: Focus Group <no-reply@fg.local>\r\n"))
	assert.Contains(t, raw, "Subject: Reset\r\n")
	assert.Contains(t, raw, "text/plain")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nlink"))
}

func TestSMTPMailer_ErrorAndCancel(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()
	sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421") }

	m, err := NewSMTPMailer("mail.local:25", "user", "pw", "a@b.c")
	require.NoError(t, err)
	assert.NotNil(t, m.auth)
	assert.ErrorContains(t, m.Send(context.Background(), Message{To: "x@y.z"}), "smtp send: 421")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, Message{To: "x@y.z"}), context.Canceled)
}

type fakeEmails struct {
	req *resend.SendEmailRequest
	err error
}

func (f *fakeEmails) SendWithContext(_ context.Context, p *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.req = p
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "em_1"}, nil
}

func TestResendMailer_Send(t *testing.T) {
	fake := &fakeEmails{}
	m := &ResendMailer{emails: fake, from: "a@b.c"}

	require.NoError(t, m.Send(context.Background(), Message{To: "x@y.z", Subject: "S", Text: "T", HTML: "<p>T</p>"}))
	assert.Equal(t, []string{"x@y.z"}, fake.req.To)
	assert.Equal(t, "<p>T</p>", fake.req.Html)

	fake.err = errors.New("quota")
	assert.ErrorContains(t, m.Send(context.Background(), Message{To: "x@y.z"}), "resend send: quota")
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "a@b.c", envelopeAddress("Name <a@b.c>"))
	assert.Equal(t, "a@b.c", envelopeAddress("a@b.c"))
}
