package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/access"
	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/dbx"
	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/auth"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focusgroup/internal/server/storage"
)

type VerificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
	log         logging.Logger
	now         func() time.Time
	newKey      func(userID int64, now time.Time) string
}

func NewVerificationService(db *sql.DB, repomanager repomanager.RepositoryManager, blobs storage.BlobStore, log logging.Logger) *VerificationService {
	return &VerificationService{
		db:          db,
		repomanager: repomanager,
		blobs:       blobs,
		log:         log.With("module", "verification"),
		now:         time.Now,
		newKey:      storage.DocumentKey,
	}
}

// Upload is a parsed multipart document.
type Upload struct {
	DocumentType api.DocumentType
	FileName     string
	ContentType  string
	Data         []byte
}

// Upload validates the file again on receipt, including a sniff of its
// leading bytes, stores it and moves the user to pending.
func (s *VerificationService) Upload(ctx context.Context, caller auth.Identity, up Upload) (*api.VerificationDocument, error) {
	if !up.DocumentType.Valid() {
		return nil, common.NewFieldError("Please select a document type", api.UploadTypeField)
	}
	size := int64(len(up.Data))
	if err := common.ValidateDocument(size, up.ContentType); err != nil {
		return nil, err
	}
	if sniffed := http.DetectContentType(up.Data); !common.IsAllowedDocumentType(sniffed) {
		return nil, fmt.Errorf("%w: content looks like %q", common.ErrUnsupportedFileType, sniffed)
	}

	name := filepath.Base(strings.ReplaceAll(up.FileName, `\`, "/"))
	if name == "." || name == "/" {
		name = "document"
	}

	key := s.newKey(caller.UserID, s.now())
	if err := s.blobs.Put(ctx, key, up.ContentType, bytes.NewReader(up.Data), size); err != nil {
		return nil, err
	}

	var doc *models.Document
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		doc, err = s.repomanager.Documents(tx).Create(ctx, &models.Document{
			UserID:       caller.UserID,
			DocumentType: up.DocumentType,
			Status:       api.DocumentPending,
			FileName:     name,
			ContentType:  up.ContentType,
			Size:         size,
			StorageKey:   key,
		})
		if err != nil {
			return err
		}
		return s.repomanager.Users(tx).UpdateVerificationStatus(ctx, caller.UserID, api.VerificationPending)
	})
	if err != nil {
		// The object stays behind; the key is random so nothing points at it.
		s.log.Error(ctx, "document row not stored", "storage_key", key, "error", err)
		return nil, err
	}

	s.log.Info(ctx, "document uploaded", "user_id", caller.UserID, "document_id", doc.ID, "type", doc.DocumentType, "size", size)
	pub := doc.Public()
	return &pub, nil
}

func (s *VerificationService) Status(ctx context.Context, userID int64) (*api.VerificationStatusResponse, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fail(common.ErrorUnauthorized, "User not found")
		}
		return nil, err
	}
	docs, err := s.repomanager.Documents(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &api.VerificationStatusResponse{Status: u.VerificationStatus, Documents: make([]api.VerificationDocument, 0, len(docs))}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, d.Public())
	}
	return resp, nil
}

// UserStatus is Status for any user, limited to reviewers.
func (s *VerificationService) UserStatus(ctx context.Context, caller auth.Identity, userID int64) (*api.VerificationStatusResponse, error) {
	if !access.CanReview(caller.Role) {
		return nil, fail(common.ErrorForbidden, "Insufficient permissions")
	}
	resp, err := s.Status(ctx, userID)
	if errors.Is(err, common.ErrorUnauthorized) {
		return nil, fail(common.ErrorNotFound, "User not found")
	}
	return resp, err
}

// Review settles a document and sets the owner's verification status to
// match. Rejection needs a reason.
func (s *VerificationService) Review(ctx context.Context, caller auth.Identity, id int64, req api.ReviewDocumentRequest) (*api.VerificationDocument, error) {
	if !access.CanReview(caller.Role) {
		return nil, fail(common.ErrorForbidden, "Insufficient permissions")
	}

	var userStatus api.VerificationStatus
	switch req.Status {
	case api.DocumentVerified:
		userStatus = api.VerificationVerified
		req.RejectionReason = ""
	case api.DocumentRejected:
		userStatus = api.VerificationRejected
		req.RejectionReason = strings.TrimSpace(req.RejectionReason)
		if req.RejectionReason == "" {
			return nil, common.NewFieldError("A rejection reason is required", "rejectionReason")
		}
	default:
		return nil, common.NewFieldError("Status must be verified or rejected", "status")
	}

	var doc *models.Document
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		docs := s.repomanager.Documents(tx)
		var err error
		doc, err = docs.Get(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fail(common.ErrorNotFound, "Document not found")
			}
			return err
		}
		if err := docs.Review(ctx, id, req.Status, req.RejectionReason, caller.UserID); err != nil {
			return err
		}
		return s.repomanager.Users(tx).UpdateVerificationStatus(ctx, doc.UserID, userStatus)
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc.Status = req.Status
	doc.RejectionReason = req.RejectionReason
	doc.ReviewedBy = &caller.UserID
	doc.ReviewedAt = &now

	s.log.Info(ctx, "document reviewed", "document_id", id, "reviewer_id", caller.UserID, "status", req.Status)
	pub := doc.Public()
	return &pub, nil
}

// DocumentURL returns a short-lived download link for reviewers.
func (s *VerificationService) DocumentURL(ctx context.Context, caller auth.Identity, id int64) (string, error) {
	if !access.CanReview(caller.Role) {
		return "", fail(common.ErrorForbidden, "Insufficient permissions")
	}
	doc, err := s.repomanager.Documents(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fail(common.ErrorNotFound, "Document not found")
		}
		return "", err
	}
	return s.blobs.PresignGet(ctx, doc.StorageKey)
}
