package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beaconhr/onboarding-system/internal/api/metrics"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// OnboardingHandler serves both sides of the application lifecycle: the
// employee submission flow and the HR review board.
type OnboardingHandler struct {
	service ports.OnboardingService
}

func NewOnboardingHandler(service ports.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// Get returns the caller's current onboarding application.
//
// @Summary      Get my onboarding application
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  onboardingResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/onboarding [get]
func (h *OnboardingHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(view))
}

// Submit files (or re-files) the caller's onboarding application.
//
// @Summary      Submit my onboarding application
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitOnboardingRequest  true  "Full application payload"
// @Success      200   {object}  onboardingResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/onboarding/submit [post]
func (h *OnboardingHandler) Submit(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req submitOnboardingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := toEmployeeInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
	}

	view, err := h.service.Submit(c.Request().Context(), userID, ctxEmail(c), input)
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	return c.JSON(http.StatusOK, toOnboardingResponse(view))
}

// Applications returns submitted applications grouped by status.
//
// @Summary      List onboarding applications grouped by status
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  errorResponse
// @Router       /api/hr/onboarding-applications [get]
func (h *OnboardingHandler) Applications(c echo.Context) error {
	groups, err := h.service.Applications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"pending":  groups.Pending,
		"approved": groups.Approved,
		"rejected": groups.Rejected,
	})
}

// Approve moves a pending application to approved.
//
// @Summary      Approve a pending onboarding application
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Employee id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/hr/onboarding/{id}/approve [patch]
func (h *OnboardingHandler) Approve(c echo.Context) error {
	emp, err := h.service.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ApplicationsReviewedTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, map[string]any{"employee": emp})
}

// Reject moves a pending application to rejected with mandatory feedback.
//
// @Summary      Reject a pending onboarding application
// @Tags         hr
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "Employee id"
// @Param        body  body  rejectApplicationRequest  true  "Rejection feedback"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/hr/onboarding/{id}/reject [patch]
func (h *OnboardingHandler) Reject(c echo.Context) error {
	var req rejectApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	emp, err := h.service.Reject(c.Request().Context(), c.Param("id"), req.Feedback)
	if err != nil {
		return err
	}

	metrics.ApplicationsReviewedTotal.WithLabelValues("rejected").Inc()
	return c.JSON(http.StatusOK, map[string]any{"employee": emp})
}
