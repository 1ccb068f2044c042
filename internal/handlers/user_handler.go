package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/services"
	"afisha_backend/pkg/apperrors"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /admin/users.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.NewUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List handles GET /admin/users.
func (h *UserHandler) List(c *gin.Context) {
	from, size, ok := pagination(c)
	if !ok {
		return
	}
	ids := queryList(c, "ids")

	resp, err := h.users.GetUsers(c.Request.Context(), ids, from, size)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /admin/users/:userId.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
