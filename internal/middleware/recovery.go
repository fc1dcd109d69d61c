package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 for that request only
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("[PANIC] %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString(constants.ContextKeyRequestID),
					rec,
					debug.Stack(),
				)
				telemetry.CaptureError(c.Request.Context(), fmt.Errorf("panic: %v", rec))

				c.AbortWithStatusJSON(http.StatusInternalServerError, contact.ContactResponse{
					Message: contact.MessageInternalError,
				})
			}
		}()

		c.Next()
	}
}
