package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// OnboardingService implements the application lifecycle:
// not_started → pending → approved | rejected, rejected → pending on resubmit.
type OnboardingService struct {
	employees ports.EmployeeRepository
	documents ports.DocumentRepository
	log       zerolog.Logger
}

func NewOnboardingService(employees ports.EmployeeRepository, documents ports.DocumentRepository, log zerolog.Logger) *OnboardingService {
	return &OnboardingService{employees: employees, documents: documents, log: log}
}

func (s *OnboardingService) Get(ctx context.Context, userID string) (*ports.OnboardingView, error) {
	view := &ports.OnboardingView{Status: domain.ApplicationNotStarted}

	emp, err := s.employees.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		// first visit: nothing submitted yet
	case err != nil:
		return nil, err
	default:
		view.Status = emp.ApplicationStatus
		view.HRFeedback = emp.HRFeedback
		view.Employee = emp
	}

	docs, err := s.documents.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	view.Documents = docs

	return view, nil
}

// Submit upserts the profile and moves the application to pending. Submitting
// while pending or approved is a conflict; the employee's id and email come
// from the token, not the payload.
func (s *OnboardingService) Submit(ctx context.Context, userID, email string, input ports.EmployeeInput) (*ports.OnboardingView, error) {
	existing, err := s.employees.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if !existing.ApplicationStatus.CanSubmit() {
			return nil, domain.ErrApplicationLocked
		}
	case !errors.Is(err, domain.ErrEmployeeNotFound):
		return nil, err
	}

	emp := employeeFromInput(userID, email, input)
	emp.ApplicationStatus = domain.ApplicationPending
	emp.HRFeedback = ""
	emp.UpdatedAt = time.Now().UTC()
	if existing != nil {
		emp.ID = existing.ID
		emp.CreatedAt = existing.CreatedAt
	} else {
		emp.CreatedAt = emp.UpdatedAt
	}

	saved, err := s.employees.Upsert(ctx, emp)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("employee_id", saved.ID).Msg("onboarding application submitted")

	return &ports.OnboardingView{
		Status:     saved.ApplicationStatus,
		HRFeedback: saved.HRFeedback,
		Employee:   saved,
		Documents:  docs,
	}, nil
}

func (s *OnboardingService) Applications(ctx context.Context) (*ports.ApplicationGroups, error) {
	submitted, err := s.employees.ListByStatuses(ctx, []domain.ApplicationStatus{
		domain.ApplicationPending,
		domain.ApplicationApproved,
		domain.ApplicationRejected,
	})
	if err != nil {
		return nil, err
	}

	groups := &ports.ApplicationGroups{}
	for _, e := range submitted {
		switch e.ApplicationStatus {
		case domain.ApplicationPending:
			groups.Pending = append(groups.Pending, e)
		case domain.ApplicationApproved:
			groups.Approved = append(groups.Approved, e)
		case domain.ApplicationRejected:
			groups.Rejected = append(groups.Rejected, e)
		}
	}
	return groups, nil
}

// Approve requires a pending application. The conditional update makes two
// concurrent reviews resolve to exactly one winner.
func (s *OnboardingService) Approve(ctx context.Context, employeeID string) (*domain.Employee, error) {
	emp, err := s.employees.UpdateApplicationStatus(ctx, employeeID, domain.ApplicationPending, domain.ApplicationApproved, "")
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("employee_id", employeeID).Msg("onboarding application approved")
	return emp, nil
}

func (s *OnboardingService) Reject(ctx context.Context, employeeID, feedback string) (*domain.Employee, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, domain.ErrFeedbackRequired
	}
	emp, err := s.employees.UpdateApplicationStatus(ctx, employeeID, domain.ApplicationPending, domain.ApplicationRejected, feedback)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("employee_id", employeeID).Msg("onboarding application rejected")
	return emp, nil
}

func employeeFromInput(userID, email string, in ports.EmployeeInput) *domain.Employee {
	emp := &domain.Employee{
		UserID:          userID,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		MiddleName:      in.MiddleName,
		PreferredName:   in.PreferredName,
		ProfilePicture:  in.ProfilePicture,
		PhoneNumber:     in.PhoneNumber,
		WorkPhoneNumber: in.WorkPhoneNumber,
		Email:           email,
		SSN:             in.SSN,
		DOB:             in.DOB,
		Gender:          in.Gender,
		Address: domain.Address{
			Building: in.Address.Building,
			Street:   in.Address.Street,
			City:     in.Address.City,
			State:    in.Address.State,
			Zip:      in.Address.Zip,
		},
		ResidencyStatus: domain.ResidencyStatus{
			IsCitizenOrPermanentResident: in.Residency.IsCitizenOrPermanentResident,
			StatusType:                   in.Residency.StatusType,
			WorkAuthorization: domain.WorkAuthorization{
				Type:      in.Residency.WorkAuthorization.Type,
				OtherType: in.Residency.WorkAuthorization.OtherType,
				StartDate: in.Residency.WorkAuthorization.StartDate,
				EndDate:   in.Residency.WorkAuthorization.EndDate,
			},
		},
	}
	if in.Reference != nil {
		ref := contactFromInput(*in.Reference)
		emp.Reference = &ref
	}
	for _, ec := range in.EmergencyContacts {
		emp.EmergencyContacts = append(emp.EmergencyContacts, contactFromInput(ec))
	}
	return emp
}

func contactFromInput(in ports.ContactInput) domain.ContactPerson {
	return domain.ContactPerson{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		MiddleName:   in.MiddleName,
		Phone:        in.Phone,
		Email:        in.Email,
		Relationship: in.Relationship,
	}
}
