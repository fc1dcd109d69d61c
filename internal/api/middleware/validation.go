package middleware

import (
	"errors"
	"net/http"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/api/validation"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validator *validation.Validator
	logger    *logging.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(v *validation.Validator, logger *logging.Logger) *ValidationMiddleware {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &ValidationMiddleware{
		validator: v,
		logger:    logger,
	}
}

// ValidateContactRequest parses the preserved body into a submission and
// stores it under ContextKeyContact. Anything invalid ends the request with
// 400 before a message is built.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := RawBody(c)
		if !ok {
			m.logger.Error("[VALIDATION] %s | request body was not preserved",
				c.GetString(constants.ContextKeyRequestID))
			c.AbortWithStatusJSON(http.StatusInternalServerError, contact.ContactResponse{
				Message: contact.MessageInternalError,
			})
			return
		}

		submission, err := m.validator.ParseSubmission(body)
		if err != nil {
			var vErr *validation.ValidationError
			if errors.As(err, &vErr) {
				// Never log the offending value
				m.logger.Info("[VALIDATION] %s | rejected field=%s rule=%s",
					c.GetString(constants.ContextKeyRequestID), vErr.Field, vErr.Tag)
			} else {
				m.logger.Info("[VALIDATION] %s | rejected: %v",
					c.GetString(constants.ContextKeyRequestID), err)
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, contact.ContactResponse{
				Message: contact.MessageBadRequest,
			})
			return
		}

		c.Set(constants.ContextKeyContact, submission)
		c.Next()
	}
}
