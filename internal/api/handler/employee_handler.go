package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// EmployeeHandler serves the HR employee directory.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List returns all employees sorted by last name.
//
// @Summary      List all employees
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Employee
// @Failure      403  {object}  errorResponse
// @Router       /api/hr/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	emps, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emps)
}

// Search matches the query against first, last, and preferred names.
//
// @Summary      Search employees by name
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "Name fragment"
// @Success      200  {array}   domain.Employee
// @Failure      400  {object}  errorResponse
// @Router       /api/hr/employees/search [get]
func (h *EmployeeHandler) Search(c echo.Context) error {
	emps, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emps)
}

// Detail returns a single employee profile.
//
// @Summary      Get an employee's full profile
// @Tags         hr
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Employee id"
// @Success      200  {object}  domain.Employee
// @Failure      404  {object}  errorResponse
// @Router       /api/hr/employees/{id} [get]
func (h *EmployeeHandler) Detail(c echo.Context) error {
	emp, err := h.service.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emp)
}
