package handler

import (
	"time"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// --- Request → Service input ---

func toEmployeeInput(req submitOnboardingRequest) (ports.EmployeeInput, error) {
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return ports.EmployeeInput{}, domain.ErrInvalidPatch
	}

	wa := ports.WorkAuthorizationInput{
		Type:      req.Residency.WorkAuthorization.Type,
		OtherType: req.Residency.WorkAuthorization.OtherType,
	}
	if wa.StartDate, err = parseOptionalDate(req.Residency.WorkAuthorization.StartDate); err != nil {
		return ports.EmployeeInput{}, domain.ErrInvalidPatch
	}
	if wa.EndDate, err = parseOptionalDate(req.Residency.WorkAuthorization.EndDate); err != nil {
		return ports.EmployeeInput{}, domain.ErrInvalidPatch
	}

	in := ports.EmployeeInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		PreferredName:  req.PreferredName,
		ProfilePicture: req.ProfilePicture,
		Address: ports.AddressInput{
			Building: req.Address.Building,
			Street:   req.Address.Street,
			City:     req.Address.City,
			State:    req.Address.State,
			Zip:      req.Address.Zip,
		},
		PhoneNumber:     req.PhoneNumber,
		WorkPhoneNumber: req.WorkPhoneNumber,
		SSN:             req.SSN,
		DOB:             dob,
		Gender:          req.Gender,
		Residency: ports.ResidencyInput{
			IsCitizenOrPermanentResident: req.Residency.IsCitizenOrPermanentResident,
			StatusType:                   req.Residency.StatusType,
			WorkAuthorization:            wa,
		},
	}

	if req.Reference != nil {
		ref := toContactInput(*req.Reference)
		in.Reference = &ref
	}
	in.EmergencyContacts = make([]ports.ContactInput, 0, len(req.EmergencyContacts))
	for _, ec := range req.EmergencyContacts {
		in.EmergencyContacts = append(in.EmergencyContacts, toContactInput(ec))
	}

	return in, nil
}

func toContactInput(c contactRequest) ports.ContactInput {
	return ports.ContactInput{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		MiddleName:   c.MiddleName,
		Phone:        c.Phone,
		Email:        c.Email,
		Relationship: c.Relationship,
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// --- Service result → HTTP response ---

func toOnboardingResponse(view *ports.OnboardingView) onboardingResponse {
	return onboardingResponse{
		Status:     string(view.Status),
		HRFeedback: view.HRFeedback,
		Employee:   view.Employee,
		Documents:  toDocDetails(view.Documents),
	}
}

func toDocDetails(docs []*domain.Document) []docDetail {
	out := make([]docDetail, len(docs))
	for i, d := range docs {
		out[i] = toDocDetail(d)
	}
	return out
}

func toDocDetail(d *domain.Document) docDetail {
	return docDetail{
		ID:        d.ID,
		Type:      string(d.Type),
		FileURL:   d.FileURL,
		FileName:  d.FileName,
		Status:    string(d.Status),
		Feedback:  d.Feedback,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
