package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// PersonalInfoService patches the employee profile one section at a time.
// Every section maps its own explicit allow-list of fields onto store paths;
// client-supplied keys outside the list are simply never read.
type PersonalInfoService struct {
	employees ports.EmployeeRepository
	log       zerolog.Logger
}

func NewPersonalInfoService(employees ports.EmployeeRepository, log zerolog.Logger) *PersonalInfoService {
	return &PersonalInfoService{employees: employees, log: log}
}

func (s *PersonalInfoService) Get(ctx context.Context, userID string) (*domain.Employee, error) {
	return s.employees.FindByUserID(ctx, userID)
}

func (s *PersonalInfoService) Update(ctx context.Context, userID, section string, patch ports.SectionPatch) (*domain.Employee, error) {
	fields, err := sectionFields(section, patch)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return s.employees.FindByUserID(ctx, userID)
	}

	emp, err := s.employees.UpdateFields(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("section", section).Msg("personal info updated")
	return emp, nil
}

// sectionFields builds the $set map for one section from the patch's non-nil
// fields.
func sectionFields(section string, patch ports.SectionPatch) (map[string]any, error) {
	fields := make(map[string]any)
	set := func(path string, v *string) {
		if v != nil {
			fields[path] = *v
		}
	}

	switch section {
	case ports.SectionName:
		set("first_name", patch.FirstName)
		set("last_name", patch.LastName)
		set("middle_name", patch.MiddleName)
		set("preferred_name", patch.PreferredName)
		set("profile_picture", patch.ProfilePicture)
		set("email", patch.Email)
		set("ssn", patch.SSN)
		set("gender", patch.Gender)
		if patch.DOB != nil {
			dob, err := parseDate(*patch.DOB)
			if err != nil {
				return nil, domain.ErrInvalidPatch
			}
			fields["dob"] = dob
		}

	case ports.SectionAddress:
		set("address.building", patch.Building)
		set("address.street", patch.Street)
		set("address.city", patch.City)
		set("address.state", patch.State)
		set("address.zip", patch.Zip)

	case ports.SectionContact:
		set("phone_number", patch.PhoneNumber)
		set("work_phone_number", patch.WorkPhoneNumber)

	case ports.SectionEmployment:
		set("residency_status.work_authorization.type", patch.VisaTitle)
		set("residency_status.work_authorization.other_type", patch.OtherType)
		for path, raw := range map[string]*string{
			"residency_status.work_authorization.start_date": patch.StartDate,
			"residency_status.work_authorization.end_date":   patch.EndDate,
		} {
			if raw == nil {
				continue
			}
			d, err := parseDate(*raw)
			if err != nil {
				return nil, domain.ErrInvalidPatch
			}
			fields[path] = d
		}

	case ports.SectionReference:
		if patch.Reference == nil {
			return nil, domain.ErrInvalidPatch
		}
		fields["reference"] = contactFromInput(*patch.Reference)

	case ports.SectionEmergency:
		if patch.EmergencyContact == nil {
			return nil, domain.ErrInvalidPatch
		}
		// The profile keeps an array; the patch replaces the primary contact.
		fields["emergency_contacts"] = []domain.ContactPerson{contactFromInput(*patch.EmergencyContact)}

	default:
		return nil, domain.ErrInvalidSection
	}

	return fields, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
