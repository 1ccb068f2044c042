package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/services"
	"afisha_backend/pkg/apperrors"
)

type RequestHandler struct {
	requests services.RequestService
}

func NewRequestHandler(requests services.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// Create handles POST /users/:userId/requests?eventId=...
func (h *RequestHandler) Create(c *gin.Context) {
	eventID := c.Query("eventId")
	if eventID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("parameter eventId is required"))
		return
	}

	resp, err := h.requests.Create(c.Request.Context(), c.Param("userId"), eventID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListOwn handles GET /users/:userId/requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	resp, err := h.requests.GetOwn(c.Request.Context(), c.Param("userId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel handles PATCH /users/:userId/requests/:requestId/cancel.
func (h *RequestHandler) Cancel(c *gin.Context) {
	resp, err := h.requests.Cancel(c.Request.Context(), c.Param("userId"), c.Param("requestId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListForEvent handles GET /users/:userId/events/:eventId/requests.
func (h *RequestHandler) ListForEvent(c *gin.Context) {
	resp, err := h.requests.GetForEvent(c.Request.Context(), c.Param("userId"), c.Param("eventId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Decide handles PATCH /users/:userId/events/:eventId/requests.
func (h *RequestHandler) Decide(c *gin.Context) {
	var update dto.RequestStatusUpdate
	if !bindAndValidate(c, &update) {
		return
	}

	resp, err := h.requests.DecideForEvent(c.Request.Context(), c.Param("userId"), c.Param("eventId"), update)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
