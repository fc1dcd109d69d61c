package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/osa911/contactrelay/internal/logging"

	"github.com/getsentry/sentry-go"
)

var sentryEnabled atomic.Bool

// InitSentry enables error reporting when dsn is set
func InitSentry(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
		// Contact form bodies and addresses are PII
		SendDefaultPII: false,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}

	sentryEnabled.Store(true)
	return nil
}

// CaptureError reports err tagged with the request id. No-op when Sentry is
// not configured.
func CaptureError(ctx context.Context, err error) {
	if err == nil || !sentryEnabled.Load() {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", logging.RequestID(ctx))
	})
	hub.CaptureException(err)
}

// FlushSentry waits for buffered events
func FlushSentry(timeout time.Duration) {
	if sentryEnabled.Load() {
		sentry.Flush(timeout)
	}
}
