package handlers

import (
	"context"
	"net/http"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/common"
	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/mail"
	"github.com/osa911/contactrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactSubmitter turns a validated submission into one dispatched email
type ContactSubmitter interface {
	Submit(ctx context.Context, sub *contact.Submission) mail.Outcome
}

type ContactHandler struct {
	contactService ContactSubmitter
}

func NewContactHandler(contactService ContactSubmitter) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, contact.MessageInternalError)
		return
	}

	submission, ok := contactData.(*contact.Submission)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, contact.MessageInternalError)
		return
	}

	outcome := h.contactService.Submit(c.Request.Context(), submission)

	switch outcome.Kind {
	case mail.Sent:
		utils.HandleMessage(c, contact.MessageSent)
	case mail.ClientError:
		utils.HandleAPIError(c, outcome.Err(), http.StatusBadRequest, common.ErrCodeBadRequest, contact.MessageBadRequest)
	default:
		utils.HandleAPIError(c, outcome.Err(), http.StatusInternalServerError, common.ErrCodeInternalServer, contact.MessageInternalError)
	}
}
