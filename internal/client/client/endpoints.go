package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/dmitrijs2005/focusgroup/internal/api"
)

func (c *HTTPClient) Me(ctx context.Context) (*api.User, error) {
	var u api.User
	if err := c.Do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, req api.SignUpRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, req api.SignInRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/api/auth/signin", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.Do(ctx, http.MethodPost, "/api/auth/forgot-password", api.ForgotPasswordRequest{Email: email}, nil)
}

func (c *HTTPClient) VerifyResetToken(ctx context.Context, token string) (*api.VerifyResetTokenResponse, error) {
	var resp api.VerifyResetTokenResponse
	if err := c.Do(ctx, http.MethodGet, "/api/auth/verify-reset-token/"+url.PathEscape(token), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, password string) error {
	return c.Do(ctx, http.MethodPost, "/api/auth/reset-password", api.ResetPasswordRequest{Token: token, Password: password}, nil)
}

func (c *HTTPClient) GetMenuSettings(ctx context.Context) (*api.MenuSettings, error) {
	var m api.MenuSettings
	if err := c.Do(ctx, http.MethodGet, "/api/admin/menu-settings", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) SaveMenuSettings(ctx context.Context, m api.MenuSettings) error {
	return c.Do(ctx, http.MethodPost, "/api/admin/menu-settings", m, nil)
}

func (c *HTTPClient) SubmitWaitlist(ctx context.Context, req api.InvitationRequest) error {
	return c.Do(ctx, http.MethodPost, "/api/invitation/waitlist", req, nil)
}

func (c *HTTPClient) SubmitContact(ctx context.Context, req api.ContactRequest) error {
	return c.Do(ctx, http.MethodPost, "/api/contact", req, nil)
}

// UploadDocument sends the document as multipart/form-data with the file
// part carrying its own Content-Type.
func (c *HTTPClient) UploadDocument(ctx context.Context, docType api.DocumentType, fileName, contentType string, data []byte) (*api.VerificationDocument, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(api.UploadTypeField, string(docType)); err != nil {
		return nil, fmt.Errorf("write field: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, api.UploadFileField, fileName))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	var doc api.VerificationDocument
	if err := c.DoMultipart(ctx, "/api/verification/upload", w.FormDataContentType(), &buf, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) VerificationStatus(ctx context.Context) (*api.VerificationStatusResponse, error) {
	var resp api.VerificationStatusResponse
	if err := c.Do(ctx, http.MethodGet, "/api/verification/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserVerificationStatus fetches another user's documents. Reviewers only.
func (c *HTTPClient) UserVerificationStatus(ctx context.Context, userID int64) (*api.VerificationStatusResponse, error) {
	var resp api.VerificationStatusResponse
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/verification/users/%d", userID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ReviewDocument(ctx context.Context, id int64, req api.ReviewDocumentRequest) (*api.VerificationDocument, error) {
	var doc api.VerificationDocument
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/verification/documents/%d/review", id), req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) ListMessages(ctx context.Context) ([]api.Message, error) {
	var msgs []api.Message
	if err := c.Do(ctx, http.MethodGet, "/api/messages", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, req api.SendMessageRequest) (*api.Message, error) {
	var msg api.Message
	if err := c.Do(ctx, http.MethodPost, "/api/messages/send", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *HTTPClient) MarkMessageRead(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/messages/%d/read", id), nil, nil)
}

func (c *HTTPClient) ListParticipants(ctx context.Context) ([]api.Participant, error) {
	var ps []api.Participant
	if err := c.Do(ctx, http.MethodGet, "/api/manager/participants", nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}
