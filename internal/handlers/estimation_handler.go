package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/services"
	"afisha_backend/pkg/apperrors"
)

type EstimationHandler struct {
	estimations services.EstimationService
}

func NewEstimationHandler(estimations services.EstimationService) *EstimationHandler {
	return &EstimationHandler{estimations: estimations}
}

// Rate handles POST /users/:userId/events/:eventId/rating?mark=...
func (h *EstimationHandler) Rate(c *gin.Context) {
	mark, err := strconv.Atoi(c.Query("mark"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("parameter mark must be an integer"))
		return
	}

	if err := h.estimations.Rate(c.Request.Context(), c.Param("userId"), c.Param("eventId"), mark); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Withdraw handles DELETE /users/:userId/events/:eventId/rating.
func (h *EstimationHandler) Withdraw(c *gin.Context) {
	if err := h.estimations.Withdraw(c.Request.Context(), c.Param("userId"), c.Param("eventId")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Rating handles GET /events/:eventId/rating.
func (h *EstimationHandler) Rating(c *gin.Context) {
	rating, err := h.estimations.Rating(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}
