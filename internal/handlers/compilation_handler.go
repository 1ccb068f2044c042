package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/services"
	"afisha_backend/pkg/apperrors"
)

type CompilationHandler struct {
	compilations services.CompilationService
}

func NewCompilationHandler(compilations services.CompilationService) *CompilationHandler {
	return &CompilationHandler{compilations: compilations}
}

// Create handles POST /admin/compilations.
func (h *CompilationHandler) Create(c *gin.Context) {
	var req dto.NewCompilationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.compilations.Create(c.Request.Context(), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update handles PATCH /admin/compilations/:compId.
func (h *CompilationHandler) Update(c *gin.Context) {
	var req dto.UpdateCompilationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.compilations.Update(c.Request.Context(), c.Param("compId"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /admin/compilations/:compId.
func (h *CompilationHandler) Delete(c *gin.Context) {
	if err := h.compilations.Delete(c.Request.Context(), c.Param("compId")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /compilations.
func (h *CompilationHandler) List(c *gin.Context) {
	from, size, ok := pagination(c)
	if !ok {
		return
	}
	pinned, ok := queryBool(c, "pinned")
	if !ok {
		return
	}

	resp, err := h.compilations.GetAll(c.Request.Context(), pinned, from, size)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /compilations/:compId.
func (h *CompilationHandler) Get(c *gin.Context) {
	resp, err := h.compilations.GetByID(c.Request.Context(), c.Param("compId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
