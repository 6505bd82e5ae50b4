package api

import "time"

type DocumentType string

const (
	DocumentIdentity DocumentType = "identity"
	DocumentAddress  DocumentType = "address"
	DocumentIncome   DocumentType = "income"
	DocumentOther    DocumentType = "other"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentIdentity, DocumentAddress, DocumentIncome, DocumentOther:
		return true
	}
	return false
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentVerified DocumentStatus = "verified"
	DocumentRejected DocumentStatus = "rejected"
)

type VerificationDocument struct {
	ID              int64          `json:"id"`
	DocumentType    DocumentType   `json:"documentType"`
	Status          DocumentStatus `json:"status"`
	FileName        string         `json:"fileName"`
	UploadedAt      time.Time      `json:"uploadedAt"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
}

type VerificationStatusResponse struct {
	Status    VerificationStatus     `json:"status"`
	Documents []VerificationDocument `json:"documents"`
}

// ReviewDocumentRequest is sent by admins and managers to settle a document.
type ReviewDocumentRequest struct {
	Status          DocumentStatus `json:"status"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
}

// Multipart field names of the upload form.
const (
	UploadFileField = "document"
	UploadTypeField = "documentType"
)

// DocumentURLResponse carries a short-lived download link for reviewers.
type DocumentURLResponse struct {
	URL string `json:"url"`
}
