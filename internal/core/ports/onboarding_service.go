package ports

import (
	"context"
	"time"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// AddressInput holds a mailing address.
type AddressInput struct {
	Building string
	Street   string
	City     string
	State    string
	Zip      string
}

// ContactInput holds an emergency contact or reference.
type ContactInput struct {
	FirstName    string
	LastName     string
	MiddleName   string
	Phone        string
	Email        string
	Relationship string
}

// WorkAuthorizationInput holds visa details for sponsored employees.
type WorkAuthorizationInput struct {
	Type      string
	OtherType string
	StartDate *time.Time
	EndDate   *time.Time
}

// ResidencyInput holds citizenship / sponsorship state.
type ResidencyInput struct {
	IsCitizenOrPermanentResident bool
	StatusType                   string
	WorkAuthorization            WorkAuthorizationInput
}

// EmployeeInput is the full onboarding payload. The authenticated user's id
// and email are taken from the token, never from the payload.
type EmployeeInput struct {
	FirstName         string
	LastName          string
	MiddleName        string
	PreferredName     string
	ProfilePicture    string
	Address           AddressInput
	PhoneNumber       string
	WorkPhoneNumber   string
	SSN               string
	DOB               time.Time
	Gender            string
	Residency         ResidencyInput
	Reference         *ContactInput
	EmergencyContacts []ContactInput
}

// OnboardingView is the employee-facing snapshot of the application.
type OnboardingView struct {
	Status     domain.ApplicationStatus
	HRFeedback string
	// Employee is nil before the first submission.
	Employee  *domain.Employee
	Documents []*domain.Document
}

// ApplicationGroups buckets submitted applications for the HR review board.
type ApplicationGroups struct {
	Pending  []*domain.Employee
	Approved []*domain.Employee
	Rejected []*domain.Employee
}

// OnboardingService implements the onboarding application lifecycle:
// not_started → pending → approved | rejected, with rejected → pending on
// resubmission.
type OnboardingService interface {
	Get(ctx context.Context, userID string) (*OnboardingView, error)
	// Submit upserts the profile and moves it to pending. Submission while
	// pending or approved yields domain.ErrApplicationLocked.
	Submit(ctx context.Context, userID, email string, input EmployeeInput) (*OnboardingView, error)
	Applications(ctx context.Context) (*ApplicationGroups, error)
	// Approve requires a pending application.
	Approve(ctx context.Context, employeeID string) (*domain.Employee, error)
	// Reject requires a pending application and non-empty feedback.
	Reject(ctx context.Context, employeeID, feedback string) (*domain.Employee, error)
}
