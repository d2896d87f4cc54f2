package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// PersonalInfoHandler serves the post-onboarding profile screens.
type PersonalInfoHandler struct {
	service ports.PersonalInfoService
}

func NewPersonalInfoHandler(service ports.PersonalInfoService) *PersonalInfoHandler {
	return &PersonalInfoHandler{service: service}
}

// sectionPatchRequest is a superset of every section's editable fields. The
// service only reads the fields belonging to the section being patched, so
// stray keys never reach the store.
type sectionPatchRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	MiddleName     *string `json:"middle_name"`
	PreferredName  *string `json:"preferred_name"`
	ProfilePicture *string `json:"profile_picture"`
	Email          *string `json:"email"`
	SSN            *string `json:"ssn"`
	DOB            *string `json:"dob"`
	Gender         *string `json:"gender"`

	Building *string `json:"building"`
	Street   *string `json:"street"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Zip      *string `json:"zip"`

	PhoneNumber     *string `json:"phone_number"`
	WorkPhoneNumber *string `json:"work_phone_number"`

	VisaTitle *string `json:"visa_title"`
	OtherType *string `json:"other_type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`

	Reference        *contactRequest `json:"reference"`
	EmergencyContact *contactRequest `json:"emergency_contact"`
}

// Get returns the caller's employee profile.
//
// @Summary      Get my personal information
// @Tags         personal-info
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Employee
// @Failure      404  {object}  errorResponse
// @Router       /api/personal-info [get]
func (h *PersonalInfoHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	emp, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emp)
}

// Update patches one section of the caller's profile.
//
// @Summary      Update one section of my personal information
// @Tags         personal-info
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        section  path  string               true  "Section"  Enums(name, address, contact, employment, emergency, reference)
// @Param        body     body  sectionPatchRequest  true  "Fields to change"
// @Success      200  {object}  domain.Employee
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/personal-info/{section} [put]
func (h *PersonalInfoHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sectionPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	emp, err := h.service.Update(c.Request().Context(), userID, c.Param("section"), toSectionPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emp)
}

func toSectionPatch(req sectionPatchRequest) ports.SectionPatch {
	patch := ports.SectionPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		PreferredName:  req.PreferredName,
		ProfilePicture: req.ProfilePicture,
		Email:          req.Email,
		SSN:            req.SSN,
		DOB:            req.DOB,
		Gender:         req.Gender,

		Building: req.Building,
		Street:   req.Street,
		City:     req.City,
		State:    req.State,
		Zip:      req.Zip,

		PhoneNumber:     req.PhoneNumber,
		WorkPhoneNumber: req.WorkPhoneNumber,

		VisaTitle: req.VisaTitle,
		OtherType: req.OtherType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Reference != nil {
		ref := toContactInput(*req.Reference)
		patch.Reference = &ref
	}
	if req.EmergencyContact != nil {
		ec := toContactInput(*req.EmergencyContact)
		patch.EmergencyContact = &ec
	}
	return patch
}
