package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// ReminderThrottle limits how often a reminder email may be sent per employee.
// Backed by Redis (SET NX with TTL).
type ReminderThrottle interface {
	// Allow reports whether a reminder may be sent now and, when it may,
	// claims the slot for the cooldown window.
	Allow(ctx context.Context, ownerID string) (bool, error)
}

// VisaService implements the HR visa review surface on top of the pure
// domain.NextVisaStep fold.
type VisaService struct {
	employees ports.EmployeeRepository
	documents ports.DocumentRepository
	mailer    Mailer
	throttle  ReminderThrottle
	log       zerolog.Logger
}

func NewVisaService(
	employees ports.EmployeeRepository,
	documents ports.DocumentRepository,
	mailer Mailer,
	throttle ReminderThrottle,
	log zerolog.Logger,
) *VisaService {
	return &VisaService{
		employees: employees,
		documents: documents,
		mailer:    mailer,
		throttle:  throttle,
		log:       log,
	}
}

// InProgress lists sponsored employees with an unfinished pipeline, each with
// the next actionable step. Fully approved employees are excluded.
func (s *VisaService) InProgress(ctx context.Context) ([]ports.VisaProgressItem, error) {
	emps, err := s.employees.ListSponsored(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]ports.VisaProgressItem, 0, len(emps))
	for _, emp := range emps {
		docs, err := s.documents.ListByOwnerTypes(ctx, emp.UserID, domain.VisaSteps)
		if err != nil {
			return nil, err
		}

		progress := domain.NextVisaStep(docs)
		if progress.NextStep == domain.VisaAllApproved {
			continue
		}

		items = append(items, ports.VisaProgressItem{
			Employee:      emp,
			NextStep:      progress.NextStep,
			CurrentDoc:    progress.Current,
			DaysRemaining: emp.VisaDaysRemaining(now),
		})
	}
	return items, nil
}

// All lists every sponsored employee with a per-step status map.
func (s *VisaService) All(ctx context.Context) ([]ports.VisaStatusItem, error) {
	emps, err := s.employees.ListSponsored(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ports.VisaStatusItem, 0, len(emps))
	for _, emp := range emps {
		docs, err := s.documents.ListByOwnerTypes(ctx, emp.UserID, domain.VisaSteps)
		if err != nil {
			return nil, err
		}

		statuses := make(map[domain.DocumentType]ports.VisaStepStatus, len(domain.VisaSteps))
		for _, step := range domain.VisaSteps {
			if doc := docs[step]; doc != nil {
				statuses[step] = ports.VisaStepStatus{
					Status:   string(doc.Status),
					Feedback: doc.Feedback,
					FileURL:  doc.FileURL,
				}
			} else {
				statuses[step] = ports.VisaStepStatus{Status: "not_uploaded"}
			}
		}

		items = append(items, ports.VisaStatusItem{Employee: emp, Documents: statuses})
	}
	return items, nil
}

// Approve moves a pending document to approved. The conditional write ensures
// exactly one of two concurrent reviewers wins; the loser sees the document as
// already reviewed.
func (s *VisaService) Approve(ctx context.Context, ownerID string, docType domain.DocumentType) (*domain.Document, error) {
	if !domain.ValidDocumentType(docType) {
		return nil, domain.ErrInvalidDocumentType
	}
	doc, err := s.documents.Review(ctx, ownerID, docType, domain.DocumentApproved, "")
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("owner_id", ownerID).Str("type", string(docType)).Msg("document approved")
	return doc, nil
}

func (s *VisaService) Reject(ctx context.Context, ownerID string, docType domain.DocumentType, feedback string) (*domain.Document, error) {
	if !domain.ValidDocumentType(docType) {
		return nil, domain.ErrInvalidDocumentType
	}
	if strings.TrimSpace(feedback) == "" {
		return nil, domain.ErrFeedbackRequired
	}
	doc, err := s.documents.Review(ctx, ownerID, docType, domain.DocumentRejected, feedback)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("owner_id", ownerID).Str("type", string(docType)).Msg("document rejected")
	return doc, nil
}

// SendReminder emails the employee to update their documents, at most once per
// cooldown window.
func (s *VisaService) SendReminder(ctx context.Context, ownerID string) (string, error) {
	emp, err := s.employees.FindByUserID(ctx, ownerID)
	if err != nil {
		return "", err
	}

	allowed, err := s.throttle.Allow(ctx, ownerID)
	if err != nil {
		// A throttle outage should not block HR; log and send anyway.
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("reminder throttle check failed, sending anyway")
	} else if !allowed {
		return "", domain.ErrReminderThrottled
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder to please upload or update your visa documents as soon as possible.\n\nThank you,\nHR Team",
		emp.FirstName,
	)
	if err := s.mailer.Send(ctx, emp.Email, "Reminder: Please Update Your Visa Documents", body); err != nil {
		return "", fmt.Errorf("send reminder email: %w", err)
	}

	s.log.Info().Str("owner_id", ownerID).Str("email", emp.Email).Msg("visa reminder sent")
	return emp.Email, nil
}
