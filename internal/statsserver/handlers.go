package statsserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/logger"
	"afisha_backend/internal/utils"
	"afisha_backend/internal/validator"
	"afisha_backend/pkg/apperrors"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RecordHit handles POST /hit.
func (h *Handler) RecordHit(c *gin.Context) {
	var hit dto.Hit
	if err := c.ShouldBindJSON(&hit); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid hit payload: "+err.Error()))
		return
	}
	if err := validator.Validate(hit); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(err.Error()))
		return
	}

	if err := h.store.InsertHit(c.Request.Context(), hit); err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	logger.CtxInfo(c.Request.Context(), "hit recorded", "app", hit.App, "uri", hit.URI)
	c.Status(http.StatusCreated)
}

// GetStats handles GET /stats.
func (h *Handler) GetStats(c *gin.Context) {
	start, err := utils.ParseDateTime(c.Query("start"))
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrInvalidDateTime(err.Error()))
		return
	}
	end, err := utils.ParseDateTime(c.Query("end"))
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrInvalidDateTime(err.Error()))
		return
	}
	if !end.After(start) {
		apperrors.HandleError(c, apperrors.ErrInvalidDateTime("the end of the period must be after its start"))
		return
	}

	uris := c.QueryArray("uris")
	// Comma-separated uris in a single parameter are accepted too.
	if len(uris) == 1 && strings.Contains(uris[0], ",") {
		uris = strings.Split(uris[0], ",")
	}
	unique := c.Query("unique") == "true"

	stats, err := h.store.QueryStats(c.Request.Context(), start, end, uris, unique)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /ready and checks database connectivity.
func (h *Handler) Ready(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
