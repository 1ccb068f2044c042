package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/services"
	"afisha_backend/internal/utils"
	"afisha_backend/pkg/apperrors"
)

type EventHandler struct {
	events services.EventService
}

func NewEventHandler(events services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// ---------------- Owner API ----------------

// Create handles POST /users/:userId/events.
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.NewEventRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.events.Create(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListOwn handles GET /users/:userId/events.
func (h *EventHandler) ListOwn(c *gin.Context) {
	from, size, ok := pagination(c)
	if !ok {
		return
	}

	resp, err := h.events.GetOwn(c.Request.Context(), c.Param("userId"), from, size,
		c.Query("sort"), c.Query("direction"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOwn handles GET /users/:userId/events/:eventId.
func (h *EventHandler) GetOwn(c *gin.Context) {
	resp, err := h.events.GetOwnByID(c.Request.Context(), c.Param("userId"), c.Param("eventId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateOwn handles PATCH /users/:userId/events/:eventId.
func (h *EventHandler) UpdateOwn(c *gin.Context) {
	var req dto.UpdateEventRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.events.UpdateOwn(c.Request.Context(), c.Param("userId"), c.Param("eventId"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ---------------- Admin API ----------------

// SearchAdmin handles GET /admin/events.
func (h *EventHandler) SearchAdmin(c *gin.Context) {
	params, ok := h.searchParams(c)
	if !ok {
		return
	}
	params.Users = queryList(c, "users")
	params.States = queryList(c, "states")

	resp, err := h.events.SearchAdmin(c.Request.Context(), params)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAdmin handles PATCH /admin/events/:eventId.
func (h *EventHandler) UpdateAdmin(c *gin.Context) {
	var req dto.UpdateEventRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.events.UpdateAdmin(c.Request.Context(), c.Param("eventId"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ---------------- Public API ----------------

// SearchPublic handles GET /events.
func (h *EventHandler) SearchPublic(c *gin.Context) {
	params, ok := h.searchParams(c)
	if !ok {
		return
	}
	params.Text = c.Query("text")
	if params.SortBy == "" {
		params.SortBy = "EVENT_DATE"
	}
	params.OnlyAvailable = c.Query("onlyAvailable") == "true"
	if params.Paid, ok = queryBool(c, "paid"); !ok {
		return
	}

	resp, err := h.events.SearchPublic(c.Request.Context(), params, c.Request.URL.Path, c.ClientIP())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPublic handles GET /events/:eventId.
func (h *EventHandler) GetPublic(c *gin.Context) {
	resp, err := h.events.GetPublished(c.Request.Context(), c.Param("eventId"), c.Request.URL.Path, c.ClientIP())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) searchParams(c *gin.Context) (dto.EventSearchParams, bool) {
	var params dto.EventSearchParams
	var ok bool

	if params.From, params.Size, ok = pagination(c); !ok {
		return params, false
	}
	params.Categories = queryList(c, "categories")
	params.SortBy = c.Query("sort")
	params.Direction = c.Query("direction")

	if raw := c.Query("rangeStart"); raw != "" {
		start, err := utils.ParseDateTime(raw)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidDateTime(err.Error()))
			return params, false
		}
		params.RangeStart = utils.NewDateTime(start)
	}
	if raw := c.Query("rangeEnd"); raw != "" {
		end, err := utils.ParseDateTime(raw)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidDateTime(err.Error()))
			return params, false
		}
		params.RangeEnd = utils.NewDateTime(end)
	}
	return params, true
}
