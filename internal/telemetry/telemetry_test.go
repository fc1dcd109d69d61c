package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), "", "contactrelay", "dev")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSentryDisabledIsNoop(t *testing.T) {
	require.NoError(t, InitSentry("", "test", "dev"))
	assert.False(t, sentryEnabled.Load())

	// Must not panic without a client
	CaptureError(context.Background(), errors.New("boom"))
	FlushSentry(0)
}
