package ports

import (
	"context"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

// Personal info sections an employee may patch independently.
const (
	SectionName       = "name"
	SectionAddress    = "address"
	SectionContact    = "contact"
	SectionEmployment = "employment"
	SectionEmergency  = "emergency"
	SectionReference  = "reference"
)

// SectionPatch carries one section's partial update. Nil pointers mean "field
// not provided"; only non-nil fields are written. Each section reads only its
// own fields, so unknown or cross-section keys can never leak into the store.
type SectionPatch struct {
	// name
	FirstName      *string
	LastName       *string
	MiddleName     *string
	PreferredName  *string
	ProfilePicture *string
	Email          *string
	SSN            *string
	DOB            *string
	Gender         *string

	// address
	Building *string
	Street   *string
	City     *string
	State    *string
	Zip      *string

	// contact
	PhoneNumber     *string
	WorkPhoneNumber *string

	// employment (maps onto residency_status.work_authorization)
	VisaTitle *string
	OtherType *string
	StartDate *string
	EndDate   *string

	// reference
	Reference *ContactInput

	// emergency (replaces the first emergency contact)
	EmergencyContact *ContactInput
}

// PersonalInfoService reads and patches the employee profile after onboarding.
type PersonalInfoService interface {
	Get(ctx context.Context, userID string) (*domain.Employee, error)
	// Update applies one section's patch. Unknown sections yield
	// domain.ErrInvalidSection; a missing profile yields
	// domain.ErrEmployeeNotFound.
	Update(ctx context.Context, userID, section string, patch SectionPatch) (*domain.Employee, error)
}
