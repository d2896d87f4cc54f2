package domain

import (
	"math"
	"strings"
	"time"
)

// ApplicationStatus is the onboarding approval state of an Employee record,
// distinct from any individual document's status.
type ApplicationStatus string

const (
	ApplicationNotStarted ApplicationStatus = "not_started"
	ApplicationPending    ApplicationStatus = "pending"
	ApplicationApproved   ApplicationStatus = "approved"
	ApplicationRejected   ApplicationStatus = "rejected"
)

// ParseApplicationStatus normalizes the status spellings used by older clients
// ("Pending", "PENDING", "Not Started", ...) to the canonical lowercase form.
// Unknown values are returned as-is, lowercased, so validation can reject them.
func ParseApplicationStatus(s string) ApplicationStatus {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	switch ApplicationStatus(norm) {
	case ApplicationNotStarted, ApplicationPending, ApplicationApproved, ApplicationRejected:
		return ApplicationStatus(norm)
	}
	return ApplicationStatus(norm)
}

// CanSubmit reports whether an onboarding application may be (re)submitted in
// the current state. Pending applications wait for review; approved ones are
// terminal.
func (s ApplicationStatus) CanSubmit() bool {
	return s == ApplicationNotStarted || s == ApplicationRejected
}

// Address is a US mailing address.
type Address struct {
	Building string `json:"building,omitempty" bson:"building,omitempty"`
	Street   string `json:"street" bson:"street"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	Zip      string `json:"zip" bson:"zip"`
}

// WorkAuthorization describes a sponsored employee's visa.
type WorkAuthorization struct {
	Type      string     `json:"type,omitempty" bson:"type,omitempty"`
	OtherType string     `json:"other_type,omitempty" bson:"other_type,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
}

// ResidencyStatus captures citizenship / visa sponsorship state.
type ResidencyStatus struct {
	IsCitizenOrPermanentResident bool              `json:"is_citizen_or_permanent_resident" bson:"is_citizen_or_permanent_resident"`
	StatusType                   string            `json:"status_type,omitempty" bson:"status_type,omitempty"`
	WorkAuthorization            WorkAuthorization `json:"work_authorization" bson:"work_authorization"`
}

// ContactPerson is an emergency contact or a reference.
type ContactPerson struct {
	FirstName    string `json:"first_name" bson:"first_name"`
	LastName     string `json:"last_name" bson:"last_name"`
	MiddleName   string `json:"middle_name,omitempty" bson:"middle_name,omitempty"`
	Phone        string `json:"phone" bson:"phone"`
	Email        string `json:"email" bson:"email"`
	Relationship string `json:"relationship" bson:"relationship"`
}

// Employee is the onboarding profile linked 1:1 to a User.
type Employee struct {
	ID                string            `json:"id" bson:"_id,omitempty"`
	UserID            string            `json:"user_id" bson:"user_id"`
	FirstName         string            `json:"first_name" bson:"first_name"`
	LastName          string            `json:"last_name" bson:"last_name"`
	MiddleName        string            `json:"middle_name,omitempty" bson:"middle_name,omitempty"`
	PreferredName     string            `json:"preferred_name,omitempty" bson:"preferred_name,omitempty"`
	ProfilePicture    string            `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	Address           Address           `json:"address" bson:"address"`
	PhoneNumber       string            `json:"phone_number" bson:"phone_number"`
	WorkPhoneNumber   string            `json:"work_phone_number,omitempty" bson:"work_phone_number,omitempty"`
	Email             string            `json:"email" bson:"email"`
	SSN               string            `json:"ssn" bson:"ssn"`
	DOB               time.Time         `json:"dob" bson:"dob"`
	Gender            string            `json:"gender" bson:"gender"`
	ResidencyStatus   ResidencyStatus   `json:"residency_status" bson:"residency_status"`
	Reference         *ContactPerson    `json:"reference,omitempty" bson:"reference,omitempty"`
	EmergencyContacts []ContactPerson   `json:"emergency_contacts" bson:"emergency_contacts"`
	ApplicationStatus ApplicationStatus `json:"application_status" bson:"application_status"`
	HRFeedback        string            `json:"hr_feedback" bson:"hr_feedback"`
	CreatedAt         time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" bson:"updated_at"`
}

// OnSponsoredVisa reports whether this employee is on the sponsored-visa track
// and therefore subject to the visa document pipeline.
func (e *Employee) OnSponsoredVisa() bool {
	return !e.ResidencyStatus.IsCitizenOrPermanentResident
}

// VisaDaysRemaining returns the number of days until the work authorization
// ends, rounded up, or nil when no end date is on file. Purely informational.
func (e *Employee) VisaDaysRemaining(now time.Time) *int {
	end := e.ResidencyStatus.WorkAuthorization.EndDate
	if end == nil {
		return nil
	}
	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	return &days
}
