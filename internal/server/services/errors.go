// Package services implements the API server's use cases on top of the
// repositories, object storage, the settings cache and the event bus.
package services

import (
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/focusgroup/internal/common"
)

// Error carries a message that is safe to return to API clients. It unwraps
// to Kind, one of the common sentinels.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

const requiredFieldsMessage = "Please fill in all required fields"

type field struct {
	name  string
	value string
}

// required reports every blank field in one FieldError.
func required(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return common.NewFieldError(requiredFieldsMessage, missing...)
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validEmail accepts a bare address only, no display name.
func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}
