package mail

import (
	"context"
	"fmt"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
)

// NewSender builds the Sender selected by cfg.Provider
func NewSender(ctx context.Context, cfg config.MailConfig, logger *logging.Logger) (Sender, error) {
	switch cfg.Provider {
	case config.ProviderHTTP:
		return NewHTTPSender(cfg.APIURL, cfg.APIKey, nil), nil
	case config.ProviderSES:
		return NewSESSender(ctx, cfg.AWSRegion)
	case config.ProviderResend:
		return NewResendSender(cfg.APIKey, cfg.APIURL)
	case config.ProviderLog:
		return NewLogSender(logger), nil
	}
	return nil, fmt.Errorf("%w: unknown mail provider %q", logging.ErrInvalidConfig, cfg.Provider)
}
