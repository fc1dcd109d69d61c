package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// PreserveRequestBody reads at most maxBodySize+1 bytes of the request body
// once, stores them in the context and restores the body for later readers.
// An oversized body is kept truncated so the validator can reject it without
// the server buffering the rest.
func PreserveRequestBody(maxBodySize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Set(constants.ContextKeyRawBody, []byte{})
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
		if err != nil {
			logging.GetGlobalLogger().Warn("[BODY] %s | failed to read request body: %v",
				c.GetString(constants.ContextKeyRequestID), err)
			c.AbortWithStatusJSON(http.StatusBadRequest, contact.ContactResponse{
				Message: contact.MessageBadRequest,
			})
			return
		}

		// Restore the body for subsequent middleware
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}

// RawBody returns the bytes stored by PreserveRequestBody
func RawBody(c *gin.Context) ([]byte, bool) {
	raw, exists := c.Get(constants.ContextKeyRawBody)
	if !exists {
		return nil, false
	}
	body, ok := raw.([]byte)
	return body, ok
}
