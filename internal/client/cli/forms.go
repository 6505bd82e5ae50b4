package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/forms"
)

// Form handlers report failures through the notifier, so they return nil
// once a submission was attempted.

func (a *App) Waitlist(ctx context.Context) error {
	f := forms.NewInvitationForm(a.api, a.notifier())
	v := &f.Values
	prompts := []struct {
		label string
		dst   *string
	}{
		{"First name", &v.FirstName},
		{"Last name", &v.LastName},
		{"Email", &v.Email},
		{"Phone (optional)", &v.Phone},
		{"Company", &v.Company},
	}
	for _, p := range prompts {
		s, err := a.ask(p.label)
		if err != nil {
			return err
		}
		*p.dst = s
	}
	msg, err := getMultiline(a.reader, "Tell us about your research needs (optional)", a.out)
	if err != nil {
		return err
	}
	v.Message = msg

	_ = f.Submit(ctx)
	return nil
}

func (a *App) Contact(ctx context.Context) error {
	f := forms.NewContactForm(a.api, a.notifier())
	v := &f.Values
	var err error
	if v.Name, err = a.ask("Name"); err != nil {
		return err
	}
	if v.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if v.Subject, err = a.ask("Subject (optional)"); err != nil {
		return err
	}
	if v.Message, err = getMultiline(a.reader, "Message", a.out); err != nil {
		return err
	}
	_ = f.Submit(ctx)
	return nil
}

func (a *App) Send(ctx context.Context) error {
	if _, err := a.requireUser(ctx); err != nil {
		return err
	}
	c := forms.NewMessageComposer(a.api, a.cache, a.notifier())
	var err error
	if c.RecipientID, err = a.ask("Recipient user id"); err != nil {
		return err
	}
	if c.Subject, err = a.ask("Subject"); err != nil {
		return err
	}
	if c.Content, err = getMultiline(a.reader, "Content", a.out); err != nil {
		return err
	}
	t, err := a.ask("Type (general/warning/campaign_invite/system) [general]")
	if err != nil {
		return err
	}
	if t != "" {
		c.Type = api.MessageType(t)
	}
	p, err := a.ask("Priority (low/normal/high/urgent) [normal]")
	if err != nil {
		return err
	}
	if p != "" {
		c.Priority = api.Priority(p)
	}

	if msg, err := c.Send(ctx); err == nil {
		a.println("Message id:", strconv.FormatInt(msg.ID, 10))
	}
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.println("Usage: upload <identity|address|income|other> <path>")
		return nil
	}
	user, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	u := forms.NewDocumentUploader(a.api, a.cache, a.notifier())
	doc, err := u.UploadFile(ctx, api.DocumentType(args[0]), args[1])
	if err != nil {
		return nil
	}
	if forms.ShowReviewControls(user.Role) {
		a.printf("Document %d is %s\n", doc.ID, doc.Status)
	} else {
		a.printf("Document %d uploaded\n", doc.ID)
	}
	return nil
}
