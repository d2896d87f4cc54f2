package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beaconhr/onboarding-system/internal/api/metrics"
	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

type generateTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"required"`
}

type verifyTokenResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

type registrationResponse struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Token     string `json:"token"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Generate issues a registration token and emails the signup link.
//
// @Summary      Generate a registration token for a new hire
// @Tags         registration
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateTokenRequest  true  "New hire email and name"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/registration/generate [post]
func (h *RegistrationHandler) Generate(c echo.Context) error {
	var req generateTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Generate(c.Request().Context(), req.Email, req.Name); err != nil {
		return err
	}

	metrics.InvitesSentTotal.Inc()
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "registration link sent",
	})
}

// Verify checks a registration token without consuming it.
//
// @Summary      Verify a registration token
// @Tags         registration
// @Produce      json
// @Param        token  query     string  false  "Registration token"
// @Success      200    {object}  verifyTokenResponse
// @Router       /api/registration/verify [get]
func (h *RegistrationHandler) Verify(c echo.Context) error {
	result, err := h.service.Verify(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, verifyTokenResponse{
		Valid:  result.Valid,
		Reason: result.Reason,
		Email:  result.Email,
		Name:   result.Name,
	})
}

// History returns every registration token ever issued, newest first.
//
// @Summary      List registration token history
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   registrationResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/hr/token-history [get]
func (h *RegistrationHandler) History(c echo.Context) error {
	regs, err := h.service.History(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]registrationResponse, 0, len(regs))
	for _, r := range regs {
		resp = append(resp, toRegistrationResponse(r))
	}
	return c.JSON(http.StatusOK, resp)
}

func toRegistrationResponse(r *domain.Registration) registrationResponse {
	return registrationResponse{
		Email:     r.Email,
		Name:      r.Name,
		Token:     r.Token,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
