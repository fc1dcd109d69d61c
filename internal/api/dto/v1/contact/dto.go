package contact

import "github.com/osa911/contactrelay/internal/api/dto/common"

// Submission represents a contact form submission. It is only handed to the
// rest of the service after validation.
type Submission struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,max=254,contactemail"`
	Phone   string `json:"phone" validate:"omitempty,max=32,phone"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactResponse is the body of every contact endpoint response
type ContactResponse = common.MessageResponse

// Fixed response messages
const (
	MessageSent          = "Email sent!"
	MessageBadRequest    = "Bad request!"
	MessageInternalError = "Internal server error!"
	MessageNotFound      = "Resource not found"
	MessageRateLimited   = "Too many requests"
)
