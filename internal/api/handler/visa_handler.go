package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beaconhr/onboarding-system/internal/api/metrics"
	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// VisaHandler serves the HR visa review surface.
type VisaHandler struct {
	service ports.VisaService
}

func NewVisaHandler(service ports.VisaService) *VisaHandler {
	return &VisaHandler{service: service}
}

type visaEmployeeSummary struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	PreferredName string `json:"preferred_name,omitempty"`
	Email         string `json:"email"`
	VisaType      string `json:"visa_type"`
	VisaStartDate string `json:"visa_start_date,omitempty"`
	VisaEndDate   string `json:"visa_end_date,omitempty"`
}

type visaProgressResponse struct {
	Employee      visaEmployeeSummary `json:"employee"`
	NextStep      string              `json:"next_step"`
	CurrentDoc    *docDetail          `json:"current_doc,omitempty"`
	DaysRemaining *int                `json:"days_remaining"`
}

type visaStepResponse struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
}

type visaStatusResponse struct {
	Employee  visaEmployeeSummary         `json:"employee"`
	Documents map[string]visaStepResponse `json:"documents"`
}

type rejectDocumentRequest struct {
	Feedback string `json:"feedback"`
}

// InProgress lists sponsored employees whose document pipeline is incomplete.
//
// @Summary      List visa employees with pending steps
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   visaProgressResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/hr/visa/in-progress [get]
func (h *VisaHandler) InProgress(c echo.Context) error {
	items, err := h.service.InProgress(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]visaProgressResponse, 0, len(items))
	for _, item := range items {
		r := visaProgressResponse{
			Employee:      toVisaEmployeeSummary(item.Employee),
			NextStep:      item.NextStep,
			DaysRemaining: item.DaysRemaining,
		}
		if item.CurrentDoc != nil {
			d := toDocDetail(item.CurrentDoc)
			r.CurrentDoc = &d
		}
		resp = append(resp, r)
	}
	return c.JSON(http.StatusOK, resp)
}

// All lists every sponsored employee with a per-step document status map.
//
// @Summary      List all visa employees with per-step statuses
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   visaStatusResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/hr/visa/all [get]
func (h *VisaHandler) All(c echo.Context) error {
	items, err := h.service.All(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]visaStatusResponse, 0, len(items))
	for _, item := range items {
		docs := make(map[string]visaStepResponse, len(item.Documents))
		for docType, step := range item.Documents {
			docs[string(docType)] = visaStepResponse{
				Status:   step.Status,
				Feedback: step.Feedback,
				FileURL:  step.FileURL,
			}
		}
		resp = append(resp, visaStatusResponse{
			Employee:  toVisaEmployeeSummary(item.Employee),
			Documents: docs,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Approve marks a pending document as approved.
//
// @Summary      Approve a pending visa document
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Param        userId   path  string  true  "Owner user id"
// @Param        docType  path  string  true  "Document type"
// @Success      200  {object}  docDetail
// @Failure      404  {object}  errorResponse
// @Router       /api/hr/visa/{userId}/{docType}/approve [patch]
func (h *VisaHandler) Approve(c echo.Context) error {
	doc, err := h.service.Approve(c.Request().Context(), c.Param("userId"), domain.DocumentType(c.Param("docType")))
	if err != nil {
		return err
	}

	metrics.DocumentsReviewedTotal.WithLabelValues(string(doc.Type), "approved").Inc()
	return c.JSON(http.StatusOK, toDocDetail(doc))
}

// Reject marks a pending document as rejected with mandatory feedback.
//
// @Summary      Reject a pending visa document
// @Tags         hr
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId   path  string                 true  "Owner user id"
// @Param        docType  path  string                 true  "Document type"
// @Param        body     body  rejectDocumentRequest  true  "Rejection feedback"
// @Success      200  {object}  docDetail
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/hr/visa/{userId}/{docType}/reject [patch]
func (h *VisaHandler) Reject(c echo.Context) error {
	var req rejectDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	doc, err := h.service.Reject(c.Request().Context(), c.Param("userId"), domain.DocumentType(c.Param("docType")), req.Feedback)
	if err != nil {
		return err
	}

	metrics.DocumentsReviewedTotal.WithLabelValues(string(doc.Type), "rejected").Inc()
	return c.JSON(http.StatusOK, toDocDetail(doc))
}

// SendReminder emails the employee to move their next visa step forward.
//
// @Summary      Send a visa reminder email
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "Owner user id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Router       /api/hr/visa/{userId}/send-reminder [post]
func (h *VisaHandler) SendReminder(c echo.Context) error {
	email, err := h.service.SendReminder(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}

	metrics.RemindersSentTotal.Inc()
	return c.JSON(http.StatusOK, map[string]string{
		"message": "reminder sent",
		"email":   email,
	})
}

func toVisaEmployeeSummary(e *domain.Employee) visaEmployeeSummary {
	s := visaEmployeeSummary{
		ID:            e.ID,
		UserID:        e.UserID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		PreferredName: e.PreferredName,
		Email:         e.Email,
		VisaType:      e.ResidencyStatus.WorkAuthorization.Type,
	}
	if start := e.ResidencyStatus.WorkAuthorization.StartDate; start != nil {
		s.VisaStartDate = start.UTC().Format("2006-01-02")
	}
	if end := e.ResidencyStatus.WorkAuthorization.EndDate; end != nil {
		s.VisaEndDate = end.UTC().Format("2006-01-02")
	}
	return s
}
