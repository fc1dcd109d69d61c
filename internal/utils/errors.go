package utils

import (
	"errors"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/common"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err with the request id and answers with the fixed
// message for status. Error details never reach the response body. Server
// errors are also reported to Sentry when it is configured.
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.GetString(constants.ContextKeyRequestID),
		c.Request.Method,
		c.Request.URL.Path,
		status,
		string(code),
		err,
	)

	if status >= 500 {
		if err == nil {
			err = errors.New(string(code))
		}
		telemetry.CaptureError(c.Request.Context(), err)
	}

	c.AbortWithStatusJSON(status, common.NewMessageResponse(message))
}
