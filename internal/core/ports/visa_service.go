package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// VisaProgressItem is one row in the HR "in progress" queue.
type VisaProgressItem struct {
	Employee *domain.Employee
	NextStep string
	// CurrentDoc is the document NextStep refers to; nil while waiting for an
	// upload.
	CurrentDoc    *domain.Document
	DaysRemaining *int
}

// VisaStepStatus is one pipeline slot in the "all sponsored employees" view.
type VisaStepStatus struct {
	Status   string // pending | approved | rejected | not_uploaded
	Feedback string
	FileURL  string
}

// VisaStatusItem is one row in the HR "all visa employees" view.
type VisaStatusItem struct {
	Employee  *domain.Employee
	Documents map[domain.DocumentType]VisaStepStatus
}

// VisaService implements the HR visa review surface.
type VisaService interface {
	// InProgress lists sponsored-track employees whose pipeline is not yet
	// complete, with the next actionable step.
	InProgress(ctx context.Context) ([]VisaProgressItem, error)
	// All lists every sponsored-track employee with a per-step status map.
	All(ctx context.Context) ([]VisaStatusItem, error)
	// Approve moves a pending (owner, type) document to approved.
	Approve(ctx context.Context, ownerID string, docType domain.DocumentType) (*domain.Document, error)
	// Reject moves a pending document to rejected; feedback is mandatory.
	Reject(ctx context.Context, ownerID string, docType domain.DocumentType, feedback string) (*domain.Document, error)
	// SendReminder emails the employee to update their documents. Throttled to
	// one reminder per employee per cooldown window; a blocked send yields
	// domain.ErrReminderThrottled. Returns the recipient address.
	SendReminder(ctx context.Context, ownerID string) (string, error)
}
