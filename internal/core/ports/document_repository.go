package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// FileRef is the stored location of an uploaded file.
type FileRef struct {
	URL  string
	Key  string
	Name string
}

// DocumentRepository defines persistence for uploaded documents. There is at
// most one document per (owner, type); the collection carries a matching
// unique index.
type DocumentRepository interface {
	// Create inserts a new document. A duplicate (owner, type) pair yields
	// domain.ErrDocumentExists.
	Create(ctx context.Context, d *domain.Document) (*domain.Document, error)
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	// ListByOwner returns the owner's documents, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error)
	// ListByOwnerTypes returns the owner's documents restricted to the given
	// types, keyed by type.
	ListByOwnerTypes(ctx context.Context, ownerID string, types []domain.DocumentType) (map[domain.DocumentType]*domain.Document, error)
	// ReplaceFile conditionally swaps the stored file on a rejected document,
	// resetting status to pending and clearing feedback, in a single write.
	// Returns domain.ErrDocumentNotFound when (id, owner) does not exist and
	// domain.ErrDocumentNotRejected when it does but is not rejected.
	ReplaceFile(ctx context.Context, id, ownerID string, file FileRef) (*domain.Document, error)
	// Review conditionally moves a pending (owner, type) document to the given
	// status in a single write, so exactly one of two concurrent reviewers
	// wins. Returns domain.ErrDocumentNotFound when the slot is empty and
	// domain.ErrDocumentNotPending when the document is past review.
	Review(ctx context.Context, ownerID string, docType domain.DocumentType, to domain.DocumentStatus, feedback string) (*domain.Document, error)
}
