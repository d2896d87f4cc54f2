package handler

// addressRequest mirrors domain.Address.
type addressRequest struct {
	Building string `json:"building"`
	Street   string `json:"street" validate:"required"`
	City     string `json:"city"   validate:"required"`
	State    string `json:"state"  validate:"required"`
	Zip      string `json:"zip"    validate:"required"`
}

type contactRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name"  validate:"required"`
	MiddleName   string `json:"middle_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Relationship string `json:"relationship"`
}

type workAuthorizationRequest struct {
	Type      string `json:"type"`
	OtherType string `json:"other_type"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
}

type residencyRequest struct {
	IsCitizenOrPermanentResident bool                     `json:"is_citizen_or_permanent_resident"`
	StatusType                   string                   `json:"status_type"`
	WorkAuthorization            workAuthorizationRequest `json:"work_authorization"`
}

// submitOnboardingRequest is the full application payload. The authenticated
// user's id and email come from the JWT, never from this body.
type submitOnboardingRequest struct {
	FirstName         string           `json:"first_name" validate:"required"`
	LastName          string           `json:"last_name"  validate:"required"`
	MiddleName        string           `json:"middle_name"`
	PreferredName     string           `json:"preferred_name"`
	ProfilePicture    string           `json:"profile_picture"`
	Address           addressRequest   `json:"address"`
	PhoneNumber       string           `json:"phone_number" validate:"required"`
	WorkPhoneNumber   string           `json:"work_phone_number"`
	SSN               string           `json:"ssn" validate:"required"`
	DOB               string           `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender            string           `json:"gender" validate:"omitempty,oneof=male female no_answer"`
	Residency         residencyRequest `json:"residency_status"`
	Reference         *contactRequest  `json:"reference"`
	EmergencyContacts []contactRequest `json:"emergency_contacts" validate:"required,min=1,dive"`
}

type rejectApplicationRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

type onboardingResponse struct {
	Status     string      `json:"status"`
	HRFeedback string      `json:"hr_feedback"`
	Employee   any         `json:"employee"`
	Documents  []docDetail `json:"documents"`
}

type docDetail struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	FileURL   string `json:"file_url"`
	FileName  string `json:"file_name"`
	Status    string `json:"status"`
	Feedback  string `json:"feedback"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
