package service

import (
	"context"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/mail"
)

// Dispatcher delivers one rendered email
type Dispatcher interface {
	Dispatch(ctx context.Context, email *mail.OutboundEmail) mail.Outcome
}

// ContactService formats submissions and hands them to the dispatcher
type ContactService struct {
	dispatcher Dispatcher
	from       string
	to         string
}

// NewContactService creates a contact service. from and to are the
// configured sender and recipient.
func NewContactService(dispatcher Dispatcher, from, to string) *ContactService {
	return &ContactService{dispatcher: dispatcher, from: from, to: to}
}

// Submit renders sub into exactly one email and dispatches it
func (s *ContactService) Submit(ctx context.Context, sub *contact.Submission) mail.Outcome {
	return s.dispatcher.Dispatch(ctx, FormatContactEmail(sub, s.from, s.to))
}
