// Package forms implements the dashboard's submission flows: waitlist,
// contact, message compose, document upload and password reset. Every form
// validates locally first and sends nothing when validation fails; failures
// are reported through the notifier with the user's input left in place.
package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/client"
	"github.com/dmitrijs2005/focusgroup/internal/client/services"
	"github.com/dmitrijs2005/focusgroup/internal/common"
)

const RequiredFieldsMessage = "Please fill in all required fields"

var ErrAlreadySubmitted = errors.New("form already submitted")

// API is the subset of the HTTP client the forms submit through.
type API interface {
	SubmitWaitlist(ctx context.Context, req api.InvitationRequest) error
	SubmitContact(ctx context.Context, req api.ContactRequest) error
	SendMessage(ctx context.Context, req api.SendMessageRequest) (*api.Message, error)
	UploadDocument(ctx context.Context, docType api.DocumentType, fileName, contentType string, data []byte) (*api.VerificationDocument, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// Field is one named input value.
type Field struct {
	Name  string
	Value string
}

// RequireFields returns a *common.FieldError naming every blank field, in
// the order given, or nil.
func RequireFields(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return common.NewFieldError(RequiredFieldsMessage, missing...)
}

type nopNotifier struct{}

func (nopNotifier) Success(string, string) {}
func (nopNotifier) Error(string, string)   {}

func notifierOrNop(n services.Notifier) services.Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func fail(n services.Notifier, err error) error {
	n.Error("Error", client.Message(err))
	return err
}
