package statsserver

import (
	"github.com/gin-gonic/gin"

	"afisha_backend/internal/middleware"
)

// NewRouter wires the statistics endpoints into a gin engine.
func NewRouter(store Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())

	handler := NewHandler(store)

	router.POST("/hit", handler.RecordHit)
	router.GET("/stats", handler.GetStats)
	router.GET("/health", handler.Health)
	router.GET("/ready", handler.Ready)

	return router
}
