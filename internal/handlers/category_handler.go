package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/services"
	"afisha_backend/pkg/apperrors"
)

type CategoryHandler struct {
	categories services.CategoryService
}

func NewCategoryHandler(categories services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create handles POST /admin/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update handles PATCH /admin/categories/:catId.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.categories.Update(c.Request.Context(), c.Param("catId"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /admin/categories/:catId.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("catId")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	from, size, ok := pagination(c)
	if !ok {
		return
	}

	resp, err := h.categories.GetAll(c.Request.Context(), from, size)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /categories/:catId.
func (h *CategoryHandler) Get(c *gin.Context) {
	resp, err := h.categories.GetByID(c.Request.Context(), c.Param("catId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
