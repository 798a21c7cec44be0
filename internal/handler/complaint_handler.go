package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/service"
)

// ComplaintHandler handles complaint lifecycle endpoints.
type ComplaintHandler struct {
	complaintService service.ComplaintService
}

// NewComplaintHandler creates a new complaint handler.
func NewComplaintHandler(complaintService service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// CreateComplaintRequest represents a new complaint submission.
type CreateComplaintRequest struct {
	CategoryID    uuid.UUID  `json:"category_id" validate:"required"`
	SubCategoryID *uuid.UUID `json:"sub_category_id"`
	Problem       string     `json:"problem" validate:"required"`
	Description   string     `json:"description" validate:"required"`
	Images        []string   `json:"images"`
	Lat           *float64   `json:"lat"`
	Lng           *float64   `json:"lng"`
	Address       string     `json:"address"`
}

// AssignComplaintRequest represents an assignment request.
type AssignComplaintRequest struct {
	ComplaintID uuid.UUID `json:"complaint_id" validate:"required"`
	EmployeeID  uuid.UUID `json:"employee_id" validate:"required"`
}

// Create godoc
// @Summary File a new complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body CreateComplaintRequest true "Complaint data"
// @Success 201 {object} model.Complaint
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.complaintService.Create(c.Request().Context(), claims.UserID, service.CreateComplaintInput{
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Problem:       req.Problem,
		Description:   req.Description,
		Images:        req.Images,
		Location: model.Location{
			Lat:     req.Lat,
			Lng:     req.Lng,
			Address: req.Address,
		},
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Complaint created",
		"complaint": complaint,
	})
}

// ListMine godoc
// @Summary List the caller's complaints, newest first
// @Tags complaints
// @Produce json
// @Success 200 {array} model.Complaint
// @Router /complaints [get]
func (h *ComplaintHandler) ListMine(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	complaints, err := h.complaintService.ListForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, complaints)
}

// ListForEmployee godoc
// @Summary List complaints in the employee's selected category
// @Tags complaints
// @Produce json
// @Success 200 {array} model.Complaint
// @Failure 400 {object} errors.ErrorResponse
// @Router /complaints/employee [get]
func (h *ComplaintHandler) ListForEmployee(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	complaints, err := h.complaintService.ListForEmployee(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, complaints)
}

// Assign godoc
// @Summary Assign a complaint to a sub-employee
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body AssignComplaintRequest true "Assignment"
// @Success 200 {object} model.Complaint
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /complaints/assign [put]
func (h *ComplaintHandler) Assign(c echo.Context) error {
	var req AssignComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.complaintService.Assign(c.Request().Context(), req.ComplaintID, req.EmployeeID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Complaint assigned successfully",
		"complaint": complaint,
	})
}

// Resolve godoc
// @Summary Mark a complaint resolved
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} model.Complaint
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /complaints/{id}/resolve [patch]
func (h *ComplaintHandler) Resolve(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid complaint id")
	}

	complaint, err := h.complaintService.Resolve(c.Request().Context(), complaintID, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Complaint marked as solved",
		"complaint": complaint,
	})
}
