package middleware

import (
	"time"

	"github.com/osa911/contactrelay/internal/api/constants"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the contact form to be posted from any origin. Preflight
// requests are answered here and never reach the rate limiter.
func CORS() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID, constants.HeaderAPIKey}
	config.ExposeHeaders = []string{constants.HeaderRequestID, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	config.MaxAge = 12 * time.Hour
	return cors.New(config)
}
