package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// FileStore abstracts where uploaded files live (local disk in this
// deployment).
type FileStore interface {
	// Save persists the upload under a fresh opaque key.
	Save(ctx context.Context, file ports.FileUpload) (ports.FileRef, error)
	Remove(ctx context.Context, key string) error
	// Path resolves a key to the local path the transport layer serves from.
	Path(key string) string
}

// DocumentService implements the per-(owner, type) document lifecycle.
type DocumentService struct {
	documents ports.DocumentRepository
	employees ports.EmployeeRepository
	store     FileStore
	log       zerolog.Logger
}

func NewDocumentService(documents ports.DocumentRepository, employees ports.EmployeeRepository, store FileStore, log zerolog.Logger) *DocumentService {
	return &DocumentService{documents: documents, employees: employees, store: store, log: log}
}

func (s *DocumentService) ListMine(ctx context.Context, userID string) ([]*domain.Document, error) {
	return s.documents.ListByOwner(ctx, userID)
}

// Upload stores the file and creates the pending document. The (owner, type)
// slot must be empty; rejected documents go through Reupload instead.
func (s *DocumentService) Upload(ctx context.Context, userID string, docType domain.DocumentType, file ports.FileUpload) (*domain.Document, error) {
	if !domain.ValidDocumentType(docType) {
		return nil, domain.ErrInvalidDocumentType
	}
	if file.Content == nil || file.Name == "" {
		return nil, domain.ErrFileRequired
	}

	ref, err := s.store.Save(ctx, file)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		OwnerID:   userID,
		Type:      docType,
		FileURL:   ref.URL,
		FileKey:   ref.Key,
		FileName:  ref.Name,
		Status:    domain.DocumentPending,
		Feedback:  "",
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.documents.Create(ctx, doc)
	if err != nil {
		// The slot was taken (or the insert failed); drop the orphaned file.
		if rmErr := s.store.Remove(ctx, ref.Key); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("file_key", ref.Key).Msg("failed to remove orphaned upload")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("type", string(docType)).Msg("document uploaded")
	return created, nil
}

// Reupload replaces the file on the caller's rejected document. The status
// check and the file swap happen in one conditional write.
func (s *DocumentService) Reupload(ctx context.Context, userID, docID string, file ports.FileUpload) (*domain.Document, error) {
	if file.Content == nil || file.Name == "" {
		return nil, domain.ErrFileRequired
	}

	ref, err := s.store.Save(ctx, file)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.ReplaceFile(ctx, docID, userID, ref)
	if err != nil {
		if rmErr := s.store.Remove(ctx, ref.Key); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("file_key", ref.Key).Msg("failed to remove orphaned upload")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("document_id", docID).Msg("document re-uploaded")
	return doc, nil
}

// Fetch authorizes file access: the owner and HR may read, everyone else is
// forbidden.
func (s *DocumentService) Fetch(ctx context.Context, requesterID, role, docID string) (*domain.Document, string, error) {
	doc, err := s.documents.FindByID(ctx, docID)
	if err != nil {
		return nil, "", err
	}
	if doc.OwnerID != requesterID && role != domain.RoleHR {
		return nil, "", domain.ErrForbidden
	}
	return doc, s.store.Path(doc.FileKey), nil
}

func (s *DocumentService) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Document, error) {
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.documents.ListByOwner(ctx, emp.UserID)
}
