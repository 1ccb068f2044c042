package routes

import (
	"github.com/gin-gonic/gin"

	"afisha_backend/internal/handlers"
	"afisha_backend/internal/middleware"
)

// Setup wires the public, private and admin route groups of the main service.
func Setup(router *gin.Engine, h *handlers.AppHandlers) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public API
	router.GET("/categories", h.Categories.List)
	router.GET("/categories/:catId", h.Categories.Get)
	router.GET("/events", h.Events.SearchPublic)
	router.GET("/events/:eventId", h.Events.GetPublic)
	router.GET("/events/:eventId/rating", h.Estimations.Rating)
	router.GET("/compilations", h.Compilations.List)
	router.GET("/compilations/:compId", h.Compilations.Get)

	// Private API
	users := router.Group("/users/:userId")
	users.Use(middleware.UserContext())
	{
		users.POST("/events", h.Events.Create)
		users.GET("/events", h.Events.ListOwn)
		users.GET("/events/:eventId", h.Events.GetOwn)
		users.PATCH("/events/:eventId", h.Events.UpdateOwn)
		users.GET("/events/:eventId/requests", h.Requests.ListForEvent)
		users.PATCH("/events/:eventId/requests", h.Requests.Decide)
		users.POST("/events/:eventId/rating", h.Estimations.Rate)
		users.DELETE("/events/:eventId/rating", h.Estimations.Withdraw)

		users.POST("/requests", h.Requests.Create)
		users.GET("/requests", h.Requests.ListOwn)
		users.PATCH("/requests/:requestId/cancel", h.Requests.Cancel)
	}

	// Admin API
	admin := router.Group("/admin")
	{
		admin.POST("/users", h.Users.Register)
		admin.GET("/users", h.Users.List)
		admin.DELETE("/users/:userId", h.Users.Delete)

		admin.POST("/categories", h.Categories.Create)
		admin.PATCH("/categories/:catId", h.Categories.Update)
		admin.DELETE("/categories/:catId", h.Categories.Delete)

		admin.GET("/events", h.Events.SearchAdmin)
		admin.PATCH("/events/:eventId", h.Events.UpdateAdmin)

		admin.POST("/compilations", h.Compilations.Create)
		admin.PATCH("/compilations/:compId", h.Compilations.Update)
		admin.DELETE("/compilations/:compId", h.Compilations.Delete)
	}
}
