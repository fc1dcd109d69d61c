package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	// Health check (no rate limit)
	SetupHealthRoutes(router, h.Health)

	v1 := router.Group("/v1")

	// Contact routes (public)
	SetupContactRoutes(v1, h.Contact, m)

	// Unknown paths and wrong methods share the fixed 404 body
	router.NoRoute(handlers.NotFound)
	router.NoMethod(handlers.NotFound)

	logger.Info("All routes have been set up successfully")
}
