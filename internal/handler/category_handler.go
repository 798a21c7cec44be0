package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/service"
)

// CategoryHandler handles category and sub-category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest carries a category's editable fields.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// SubCategoryRequest carries a sub-category's editable fields.
type SubCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category details"
// @Success 201 {object} model.Category
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), claims.UserID, req.Name, req.Description)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body CategoryRequest true "Category details"
// @Success 200 {object} model.Category
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), claims.UserID, categoryID, req.Name, req.Description)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), claims.UserID, categoryID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

// ListCategories godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateSubCategory godoc
// @Summary Create a sub-category under the employee's selected category
// @Tags subcategories
// @Accept json
// @Produce json
// @Param request body SubCategoryRequest true "Sub-category details"
// @Success 201 {object} model.SubCategory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /subcategories [post]
func (h *CategoryHandler) CreateSubCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SubCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subCategory, err := h.categoryService.CreateSubCategory(c.Request().Context(), claims.UserID, req.Name, req.Description)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, subCategory)
}

// UpdateSubCategory godoc
// @Summary Update a sub-category
// @Tags subcategories
// @Accept json
// @Produce json
// @Param id path string true "Sub-category ID"
// @Param request body SubCategoryRequest true "Sub-category details"
// @Success 200 {object} model.SubCategory
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /subcategories/{id} [put]
func (h *CategoryHandler) UpdateSubCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	subCategoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sub-category id")
	}

	var req SubCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subCategory, err := h.categoryService.UpdateSubCategory(c.Request().Context(), claims.UserID, subCategoryID, req.Name, req.Description)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, subCategory)
}

// DeleteSubCategory godoc
// @Summary Delete a sub-category
// @Tags subcategories
// @Produce json
// @Param id path string true "Sub-category ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /subcategories/{id} [delete]
func (h *CategoryHandler) DeleteSubCategory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	subCategoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sub-category id")
	}

	if err := h.categoryService.DeleteSubCategory(c.Request().Context(), claims.UserID, subCategoryID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Subcategory deleted successfully"})
}

// ListSubCategories godoc
// @Summary List sub-categories of a category
// @Tags subcategories
// @Produce json
// @Param categoryId path string true "Category ID"
// @Success 200 {array} model.SubCategory
// @Router /subcategories/category/{categoryId} [get]
func (h *CategoryHandler) ListSubCategories(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	subCategories, err := h.categoryService.ListSubCategories(c.Request().Context(), categoryID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, subCategories)
}

// ListMySubCategories godoc
// @Summary List sub-categories of the employee's selected category
// @Tags subcategories
// @Produce json
// @Success 200 {array} model.SubCategory
// @Failure 400 {object} errors.ErrorResponse
// @Router /subcategories/mine [get]
func (h *CategoryHandler) ListMySubCategories(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	subCategories, err := h.categoryService.ListSubCategoriesForEmployee(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, subCategories)
}
