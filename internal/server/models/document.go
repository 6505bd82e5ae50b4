package models

import (
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/api"
)

// Document is an uploaded verification file. The bytes live in object
// storage under StorageKey.
type Document struct {
	ID              int64
	UserID          int64
	DocumentType    api.DocumentType
	Status          api.DocumentStatus
	FileName        string
	ContentType     string
	Size            int64
	StorageKey      string
	RejectionReason string
	ReviewedBy      *int64
	UploadedAt      time.Time
	ReviewedAt      *time.Time
}

func (d *Document) Public() api.VerificationDocument {
	return api.VerificationDocument{
		ID:              d.ID,
		DocumentType:    d.DocumentType,
		Status:          d.Status,
		FileName:        d.FileName,
		UploadedAt:      d.UploadedAt,
		RejectionReason: d.RejectionReason,
	}
}
