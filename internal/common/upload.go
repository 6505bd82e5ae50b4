package common

import (
	"fmt"
	"strings"
)

// MaxDocumentSize is the largest accepted verification document (10 MiB).
const MaxDocumentSize int64 = 10 * 1024 * 1024

// AllowedDocumentTypes lists the accepted MIME types for verification uploads.
var AllowedDocumentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/jpg",
	"application/pdf",
}

// ValidateDocument checks an upload against the size limit and the MIME
// allow-list. The client runs it before any request is issued; the server
// runs it again on receipt.
func ValidateDocument(size int64, contentType string) error {
	if size > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, size, MaxDocumentSize)
	}
	if size <= 0 {
		return NewFieldError("file is empty", "file")
	}
	if !IsAllowedDocumentType(contentType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, contentType)
	}
	return nil
}

// IsAllowedDocumentType matches the media type, ignoring parameters such as
// "; charset=binary".
func IsAllowedDocumentType(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, t := range AllowedDocumentTypes {
		if mediaType == t {
			return true
		}
	}
	return false
}
