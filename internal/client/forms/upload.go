package forms

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/focusgroup/internal/access"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/querycache"
	"github.com/dmitrijs2005/focusgroup/internal/client/services"
	"github.com/dmitrijs2005/focusgroup/internal/common"
)

// DocumentUploader submits verification documents. Size and type are
// checked before anything is sent.
type DocumentUploader struct {
	api    API
	cache  *querycache.Cache
	notify services.Notifier

	mu        sync.Mutex
	uploading bool
}

func NewDocumentUploader(a API, cache *querycache.Cache, n services.Notifier) *DocumentUploader {
	return &DocumentUploader{api: a, cache: cache, notify: notifierOrNop(n)}
}

// Uploading is true while a request is in flight; the submit control is
// disabled for that time.
func (u *DocumentUploader) Uploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

// ShowReviewControls reports whether approve/reject actions are offered.
func ShowReviewControls(role api.Role) bool {
	return access.CanReview(role)
}

func (u *DocumentUploader) Upload(ctx context.Context, docType api.DocumentType, fileName, contentType string, data []byte) (*api.VerificationDocument, error) {
	if !docType.Valid() {
		return nil, fail(u.notify, common.NewFieldError("unknown document type", "documentType"))
	}
	if err := common.ValidateDocument(int64(len(data)), contentType); err != nil {
		return nil, fail(u.notify, err)
	}

	u.mu.Lock()
	if u.uploading {
		u.mu.Unlock()
		return nil, services.ErrBusy
	}
	u.uploading = true
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		u.uploading = false
		u.mu.Unlock()
	}()

	doc, err := u.api.UploadDocument(ctx, docType, fileName, contentType, data)
	if err != nil {
		return nil, fail(u.notify, err)
	}
	u.cache.Invalidate(common.QueryKeyVerificationStatus)
	u.notify.Success("Document Uploaded", "Your document has been submitted for review")
	return doc, nil
}

// UploadFile reads path and uploads it with a content type derived from the
// file extension. Oversized files are rejected before they are read.
func (u *DocumentUploader) UploadFile(ctx context.Context, docType api.DocumentType, path string) (*api.VerificationDocument, error) {
	contentType := mime.TypeByExtension(filepath.Ext(path))

	info, err := os.Stat(path)
	if err != nil {
		return nil, fail(u.notify, fmt.Errorf("stat %s: %w", path, err))
	}
	if err := common.ValidateDocument(info.Size(), contentType); err != nil {
		return nil, fail(u.notify, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fail(u.notify, fmt.Errorf("read %s: %w", path, err))
	}
	return u.Upload(ctx, docType, filepath.Base(path), contentType, data)
}
