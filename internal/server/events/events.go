// Package events carries domain events from request handlers to background
// workers, either through RabbitMQ or in-process when no broker is set.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Event types double as RabbitMQ queue names.
const (
	TypePasswordReset       = "auth.password_reset"
	TypeInvitationSubmitted = "invitation.submitted"
	TypeContactSubmitted    = "contact.submitted"
)

// Types lists every queue the server declares.
var Types = []string{TypePasswordReset, TypeInvitationSubmitted, TypeContactSubmitted}

// Event is the JSON envelope put on the wire.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

type PasswordResetPayload struct {
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	ResetURL  string    `json:"resetUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type InvitationPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Company   string `json:"company"`
}

type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Publisher emits events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

type Handler func(ctx context.Context, ev Event) error

// Subscriber registers handlers per event type.
type Subscriber interface {
	Subscribe(eventType string, h Handler)
}

func newEvent(eventType string, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: body}, nil
}
