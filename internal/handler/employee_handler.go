package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/service"
)

// EmployeeHandler handles employee workspace endpoints.
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// ChooseCategoryRequest selects the employee's working category.
type ChooseCategoryRequest struct {
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
}

// ChooseCategory godoc
// @Summary Select the category the employee works in
// @Tags employees
// @Accept json
// @Produce json
// @Param request body ChooseCategoryRequest true "Category selection"
// @Success 200 {object} model.Category
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/category [put]
func (h *EmployeeHandler) ChooseCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ChooseCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.employeeService.ChooseCategory(c.Request().Context(), claims.UserID, req.CategoryID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Category selected",
		"category": category,
	})
}

// GetDashboard godoc
// @Summary Employee dashboard with approval status
// @Tags employees
// @Produce json
// @Success 200 {object} service.Dashboard
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/dashboard [get]
func (h *EmployeeHandler) GetDashboard(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	dashboard, err := h.employeeService.GetDashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, dashboard)
}

// ListSubEmployees godoc
// @Summary List sub-employees in the employee's category
// @Tags employees
// @Produce json
// @Success 200 {array} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /employees/subemployees [get]
func (h *EmployeeHandler) ListSubEmployees(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	subEmployees, err := h.employeeService.ListSubEmployees(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, subEmployees)
}

// ApproveSubEmployee godoc
// @Summary Approve a sub-employee in the same category
// @Tags employees
// @Produce json
// @Param id path string true "Sub-employee ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/subemployees/approve/{id} [put]
func (h *EmployeeHandler) ApproveSubEmployee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	subEmployeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sub-employee id")
	}

	subEmployee, err := h.employeeService.ApproveSubEmployee(c.Request().Context(), claims.UserID, subEmployeeID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Sub-employee approved",
		"subEmployee": subEmployee,
	})
}

// DisapproveSubEmployee godoc
// @Summary Withdraw a sub-employee's approval
// @Tags employees
// @Produce json
// @Param id path string true "Sub-employee ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/subemployees/disapprove/{id} [put]
func (h *EmployeeHandler) DisapproveSubEmployee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	subEmployeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sub-employee id")
	}

	subEmployee, err := h.employeeService.DisapproveSubEmployee(c.Request().Context(), claims.UserID, subEmployeeID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Sub-employee disapproved",
		"subEmployee": subEmployee,
	})
}

// RejectSubEmployee godoc
// @Summary Reject and delete a sub-employee
// @Tags employees
// @Produce json
// @Param id path string true "Sub-employee ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/subemployees/reject/{id} [delete]
func (h *EmployeeHandler) RejectSubEmployee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	subEmployeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sub-employee id")
	}

	if err := h.employeeService.RejectSubEmployee(c.Request().Context(), claims.UserID, subEmployeeID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Sub-employee rejected and deleted"})
}
