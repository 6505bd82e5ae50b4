package api

// InvitationRequest is a waitlist application.
type InvitationRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company"`
	Message   string `json:"message,omitempty"`
	Status    string `json:"status,omitempty"`
}

const InvitationPending = "pending"

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}
