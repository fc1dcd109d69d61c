package mail

import (
	"context"

	"github.com/osa911/contactrelay/internal/logging"
)

// LogSender only logs message metadata. It is meant for local development.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string {
	return "log"
}

func (s *LogSender) Send(ctx context.Context, email *OutboundEmail) error {
	s.logger.Info("[MAIL] %s | log sender | from=%s to=%s subject=%q bytes=%d",
		logging.RequestID(ctx), email.From, email.To, email.Subject, len(email.Body))
	return nil
}
