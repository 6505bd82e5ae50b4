package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/client"
	"github.com/dmitrijs2005/focusgroup/internal/client/forms"
)

func (a *App) Messages(ctx context.Context) error {
	if _, err := a.requireUser(ctx); err != nil {
		return err
	}
	msgs, err := a.dashboard.Messages(ctx)
	if err != nil {
		return errors.New(client.Message(err))
	}
	if len(msgs) == 0 {
		a.println("No messages")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tTYPE\tPRIORITY\tREAD\tSUBJECT")
	for _, m := range msgs {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%t\t%s\n", m.ID, m.SenderID, m.MessageType, m.Priority, m.IsRead, m.Subject)
	}
	return tw.Flush()
}

func (a *App) Read(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: read <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid message id %q", args[0])
	}
	msgs, err := a.dashboard.Messages(ctx)
	if err != nil {
		return errors.New(client.Message(err))
	}
	for _, m := range msgs {
		if m.ID != id {
			continue
		}
		a.printf("Subject: %s\nFrom: %d\nSent: %s\n\n%s\n", m.Subject, m.SenderID, m.CreatedAt.Format("2006-01-02 15:04"), m.Content)
		if !m.IsRead {
			if err := a.dashboard.MarkRead(ctx, id); err != nil {
				return errors.New(client.Message(err))
			}
		}
		return nil
	}
	return fmt.Errorf("message %d not found", id)
}

const (
	uploadHint = "Upload a document with: upload <identity|address|income|other> <path>"
	reviewHint = "Use 'documents <user id>' to list a participant's documents and 'review <doc id> verified|rejected [reason]' to settle one."
)

// Status shows reviewers the verification badges. Other roles only see what
// they have submitted and how to upload more.
func (a *App) Status(ctx context.Context) error {
	u, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	st, err := a.dashboard.VerificationStatus(ctx)
	if err != nil {
		return errors.New(client.Message(err))
	}
	if !forms.ShowReviewControls(u.Role) {
		for _, d := range st.Documents {
			a.printf("  #%d %s %s\n", d.ID, d.DocumentType, d.FileName)
		}
		a.println(uploadHint)
		return nil
	}
	a.println("Verification status:", st.Status)
	a.printDocuments(st.Documents)
	a.println(reviewHint)
	return nil
}

func (a *App) printDocuments(docs []api.VerificationDocument) {
	for _, d := range docs {
		line := fmt.Sprintf("  #%d %s %s (%s)", d.ID, d.DocumentType, d.FileName, d.Status)
		if d.RejectionReason != "" {
			line += ": " + d.RejectionReason
		}
		a.println(line)
	}
}

// requireReviewer refuses other roles before any request is made.
func (a *App) requireReviewer(ctx context.Context) error {
	u, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	if !forms.ShowReviewControls(u.Role) {
		a.notifier().Error("Error", "Insufficient permissions")
		return errReviewerOnly
	}
	return nil
}

var errReviewerOnly = errors.New("admin or manager access required")

func (a *App) Documents(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: documents <user id>")
		return nil
	}
	if err := a.requireReviewer(ctx); err != nil {
		return err
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}
	st, err := a.dashboard.UserDocuments(ctx, userID)
	if err != nil {
		return errors.New(client.Message(err))
	}
	a.printf("User %d verification status: %s\n", userID, st.Status)
	if len(st.Documents) == 0 {
		a.println("No documents")
		return nil
	}
	a.printDocuments(st.Documents)
	return nil
}

func (a *App) Review(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println("Usage: review <doc id> verified|rejected [reason]")
		return nil
	}
	if err := a.requireReviewer(ctx); err != nil {
		return err
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}
	req := api.ReviewDocumentRequest{
		Status:          api.DocumentStatus(args[1]),
		RejectionReason: strings.Join(args[2:], " "),
	}
	if req.Status != api.DocumentVerified && req.Status != api.DocumentRejected {
		return fmt.Errorf("status must be %s or %s", api.DocumentVerified, api.DocumentRejected)
	}
	if req.Status == api.DocumentRejected && req.RejectionReason == "" {
		return errors.New("a rejection reason is required")
	}

	doc, err := a.dashboard.Review(ctx, id, req)
	if err != nil {
		a.notifier().Error("Error", client.Message(err))
		return nil
	}
	a.notifier().Success("Success", fmt.Sprintf("Document %d marked %s", doc.ID, doc.Status))
	return nil
}

func (a *App) Participants(ctx context.Context) error {
	ps, err := a.dashboard.Participants(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tVERIFICATION")
	for _, p := range ps {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s\n", p.ID, p.FirstName, p.LastName, p.Email, p.VerificationStatus)
	}
	return tw.Flush()
}
