package handlers

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/common"
	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports that the process is serving. It does not probe the mail
// provider.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewMessageResponse("OK"))
}

// NotFound answers unknown paths and unsupported methods
func NotFound(c *gin.Context) {
	utils.HandleStatus(c, http.StatusNotFound, contact.MessageNotFound)
}
