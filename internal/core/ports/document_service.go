package ports

import (
	"context"
	"io"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// FileUpload is an incoming multipart file, decoupled from the HTTP layer.
type FileUpload struct {
	Name    string
	Size    int64
	Content io.Reader
}

// DocumentService implements the per-(owner, type) document lifecycle:
// absent → pending → approved | rejected, with rejected → pending via
// reupload only.
type DocumentService interface {
	// ListMine returns the caller's documents, newest first.
	ListMine(ctx context.Context, userID string) ([]*domain.Document, error)
	// Upload stores the file and creates the document with status pending.
	// An existing document for the same type yields domain.ErrDocumentExists.
	Upload(ctx context.Context, userID string, docType domain.DocumentType, file FileUpload) (*domain.Document, error)
	// Reupload replaces the file on the caller's rejected document, resetting
	// it to pending and clearing feedback.
	Reupload(ctx context.Context, userID, docID string, file FileUpload) (*domain.Document, error)
	// Fetch authorizes file access (owner or HR, otherwise
	// domain.ErrForbidden) and returns the document plus the local path the
	// transport layer serves from.
	Fetch(ctx context.Context, requesterID, role, docID string) (*domain.Document, string, error)
	// ListByEmployee returns a given employee's documents for the HR detail
	// view.
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Document, error)
}
