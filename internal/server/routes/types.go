package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health  *handlers.HealthHandler
	Contact *handlers.ContactHandler
}

// Middleware contains the per-route middleware
type Middleware struct {
	Validation   *middleware.ValidationMiddleware
	RateLimiter  *middleware.RateLimiter
	MaxBodyBytes int64
}
