package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes. The limiter runs before
// the body is read so rejected callers cost nothing.
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	router.POST("/contact_us",
		m.RateLimiter.Middleware(),
		middleware.PreserveRequestBody(m.MaxBodyBytes),
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}
