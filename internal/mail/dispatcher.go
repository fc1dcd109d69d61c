package mail

import (
	"context"
	"errors"
	"time"

	"github.com/osa911/contactrelay/internal/logging"
)

// Defaults used when DispatcherConfig leaves a field at zero
const (
	DefaultTimeout    = 5 * time.Second
	DefaultRetryDelay = 250 * time.Millisecond
)

// DispatcherConfig tunes the per-attempt timeout and the retry delay
type DispatcherConfig struct {
	Timeout    time.Duration
	RetryDelay time.Duration
}

// Dispatcher sends an email and reduces the result to an Outcome. A
// ServerError gets exactly one more attempt after RetryDelay; a ClientError
// is final.
type Dispatcher struct {
	sender     Sender
	timeout    time.Duration
	retryDelay time.Duration
	logger     *logging.Logger
}

// NewDispatcher creates a dispatcher around sender
func NewDispatcher(sender Sender, cfg DispatcherConfig, logger *logging.Logger) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Dispatcher{
		sender:     sender,
		timeout:    cfg.Timeout,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// Dispatch delivers email, retrying once on a server-side failure
func (d *Dispatcher) Dispatch(ctx context.Context, email *OutboundEmail) Outcome {
	requestID := logging.RequestID(ctx)

	if d.logger.DebugEnabled() {
		d.logger.Debug("[MAIL] %s | provider=%s | to=%s | body=%q", requestID, d.sender.Name(), email.To, email.Body)
	}

	outcome := d.attempt(ctx, email)
	outcome.Attempts = 1

	if outcome.Kind == ServerError {
		d.logger.Warn("[MAIL] %s | provider=%s | attempt 1 failed, retrying in %s: %s",
			requestID, d.sender.Name(), d.retryDelay, outcome.Detail)

		timer := time.NewTimer(d.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			d.logger.Error("[MAIL] %s | provider=%s | retry abandoned: %v", requestID, d.sender.Name(), ctx.Err())
			return outcome
		case <-timer.C:
		}

		outcome = d.attempt(ctx, email)
		outcome.Attempts = 2
	}

	switch outcome.Kind {
	case Sent:
		d.logger.Info("[MAIL] %s | provider=%s | sent after %d attempt(s)", requestID, d.sender.Name(), outcome.Attempts)
	case ClientError:
		d.logger.Warn("[MAIL] %s | provider=%s | rejected: %s", requestID, d.sender.Name(), outcome.Detail)
	default:
		d.logger.Error("[MAIL] %s | provider=%s | failed after %d attempt(s): %s",
			requestID, d.sender.Name(), outcome.Attempts, outcome.Detail)
	}

	return outcome
}

func (d *Dispatcher) attempt(ctx context.Context, email *OutboundEmail) Outcome {
	attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.sender.Send(attemptCtx, email)
	kind := Classify(err)
	if kind == Sent {
		return Outcome{Kind: Sent}
	}

	var apiErr *APIError
	if d.logger.DebugEnabled() && errors.As(err, &apiErr) && apiErr.Body != "" {
		d.logger.Debug("[MAIL] %s | provider=%s | upstream response: %q",
			logging.RequestID(ctx), d.sender.Name(), apiErr.Body)
	}

	return Outcome{Kind: kind, Detail: err.Error()}
}
