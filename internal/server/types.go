package server

import (
	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/logging"
)

// Dependencies holds what the server needs from the rest of the service
type Dependencies struct {
	ContactService handlers.ContactSubmitter
	Logger         *logging.Logger
}
