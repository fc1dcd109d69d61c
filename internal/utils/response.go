package utils

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleMessage sends a 200 response with just a message. The contact form
// is posted cross-origin, so success responses always allow any origin.
func HandleMessage(c *gin.Context, message string) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.JSON(http.StatusOK, common.NewMessageResponse(message))
}

// HandleStatus sends a fixed message with the given status
func HandleStatus(c *gin.Context, status int, message string) {
	c.JSON(status, common.NewMessageResponse(message))
}
