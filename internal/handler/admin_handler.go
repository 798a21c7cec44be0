package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/service"
)

// AdminHandler handles user administration endpoints.
type AdminHandler struct {
	adminService  service.AdminService
	ticketService service.TicketService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, ticketService service.TicketService) *AdminHandler {
	return &AdminHandler{adminService: adminService, ticketService: ticketService}
}

// SetRoleRequest represents an explicit role assignment.
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin employee subemployee user"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	users, err := h.adminService.ListUsers(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), claims.UserID, userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// SetUserRole godoc
// @Summary Assign a role to a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body SetRoleRequest true "New role"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req SetRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.adminService.SetUserRole(c.Request().Context(), claims.UserID, userID, model.ParseRole(req.Role))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// ListEmployees godoc
// @Summary List all employees
// @Tags admin
// @Produce json
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/employees [get]
func (h *AdminHandler) ListEmployees(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	employees, err := h.adminService.ListEmployees(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, employees)
}

// ApproveEmployee godoc
// @Summary Approve an employee
// @Tags admin
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/employees/approve/{id} [put]
func (h *AdminHandler) ApproveEmployee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}

	employee, err := h.adminService.ApproveEmployee(c.Request().Context(), claims.UserID, employeeID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Employee approved",
		"employee": employee,
	})
}

// ToggleEmployeeApproval godoc
// @Summary Toggle an employee's approval
// @Tags admin
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/employees/toggle/{id} [put]
func (h *AdminHandler) ToggleEmployeeApproval(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}

	employee, err := h.adminService.ToggleEmployeeApproval(c.Request().Context(), claims.UserID, employeeID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	message := "Employee disapproved"
	if employee.IsApproved {
		message = "Employee approved"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  message,
		"employee": employee,
	})
}

// RejectEmployee godoc
// @Summary Reject and delete an employee
// @Tags admin
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/employees/reject/{id} [delete]
func (h *AdminHandler) RejectEmployee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}

	if err := h.adminService.RejectEmployee(c.Request().Context(), claims.UserID, employeeID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Employee rejected and deleted"})
}

// ListAllTickets godoc
// @Summary List all users' support tickets
// @Tags admin
// @Produce json
// @Success 200 {array} model.SupportTicket
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/tickets [get]
func (h *AdminHandler) ListAllTickets(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	tickets, err := h.ticketService.ListAll(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tickets)
}
