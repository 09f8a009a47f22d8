package handler

import (
	"net/http"

	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category and sub-category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name      string  `json:"name"`
	Color     *string `json:"color"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sortOrder"`
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(service.CategoryInput{
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return respondError(c, err, "Failed to create category")
	}
	return c.JSON(http.StatusCreated, category)
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		return respondError(c, err, "Failed to list categories")
	}
	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(c.Param("id"), service.CategoryInput{
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return respondError(c, err, "Failed to update category")
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryService.DeleteCategory(c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete category")
	}
	return c.NoContent(http.StatusNoContent)
}

// SubCategoryRequest represents the create/update sub-category request body
type SubCategoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// CreateSubCategory handles POST /categories/:id/subcategories
func (h *CategoryHandler) CreateSubCategory(c echo.Context) error {
	var req SubCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	subCategory, err := h.categoryService.CreateSubCategory(service.SubCategoryInput{
		Name:       req.Name,
		CategoryID: c.Param("id"),
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		return respondError(c, err, "Failed to create sub-category")
	}
	return c.JSON(http.StatusCreated, subCategory)
}

// GetSubCategories handles GET /categories/:id/subcategories
func (h *CategoryHandler) GetSubCategories(c echo.Context) error {
	subCategories, err := h.categoryService.GetSubCategories(c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to list sub-categories")
	}
	return c.JSON(http.StatusOK, subCategories)
}

// UpdateSubCategory handles PUT /categories/:id/subcategories/:subId
func (h *CategoryHandler) UpdateSubCategory(c echo.Context) error {
	var req SubCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	subCategory, err := h.categoryService.UpdateSubCategory(c.Param("subId"), service.SubCategoryInput{
		Name:       req.Name,
		CategoryID: c.Param("id"),
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		return respondError(c, err, "Failed to update sub-category")
	}
	return c.JSON(http.StatusOK, subCategory)
}

// DeleteSubCategory handles DELETE /categories/:id/subcategories/:subId
func (h *CategoryHandler) DeleteSubCategory(c echo.Context) error {
	if err := h.categoryService.DeleteSubCategory(c.Param("subId")); err != nil {
		return respondError(c, err, "Failed to delete sub-category")
	}
	return c.NoContent(http.StatusNoContent)
}
