package mail

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/osa911/contactrelay/internal/logging"

	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSender returns the scripted errors in order, then nil
type scriptedSender struct {
	mu     sync.Mutex
	errs   []error
	calls  int
	emails []*OutboundEmail
	block  bool
}

func (s *scriptedSender) Name() string { return "scripted" }

func (s *scriptedSender) Send(ctx context.Context, email *OutboundEmail) error {
	s.mu.Lock()
	s.calls++
	s.emails = append(s.emails, email)
	var err error
	if len(s.errs) > 0 {
		err = s.errs[0]
		s.errs = s.errs[1:]
	}
	block := s.block
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (s *scriptedSender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testEmail() *OutboundEmail {
	return &OutboundEmail{Subject: "Contact form submission", Body: "body", To: "to@example.com", From: "from@example.com"}
}

func newTestDispatcher(s Sender) *Dispatcher {
	return NewDispatcher(s, DispatcherConfig{Timeout: time.Second, RetryDelay: time.Millisecond}, logging.NewDiscardLogger())
}

func TestDispatch_Sent(t *testing.T) {
	sender := &scriptedSender{}
	out := newTestDispatcher(sender).Dispatch(context.Background(), testEmail())

	assert.Equal(t, Sent, out.Kind)
	assert.Equal(t, 1, out.Attempts)
	assert.NoError(t, out.Err())
	assert.Equal(t, 1, sender.Calls())
}

func TestDispatch_ClientErrorIsNeverRetried(t *testing.T) {
	sender := &scriptedSender{errs: []error{&APIError{Provider: "scripted", StatusCode: http.StatusBadRequest}}}
	out := newTestDispatcher(sender).Dispatch(context.Background(), testEmail())

	assert.Equal(t, ClientError, out.Kind)
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, 1, sender.Calls())
	assert.ErrorIs(t, out.Err(), ErrDispatchClient)
}

func TestDispatch_ServerErrorRetriedOnce(t *testing.T) {
	unavailable := &APIError{Provider: "scripted", StatusCode: http.StatusServiceUnavailable}
	sender := &scriptedSender{errs: []error{unavailable, unavailable, unavailable}}
	out := newTestDispatcher(sender).Dispatch(context.Background(), testEmail())

	assert.Equal(t, ServerError, out.Kind)
	assert.Equal(t, 2, out.Attempts)
	assert.Equal(t, 2, sender.Calls())
	assert.ErrorIs(t, out.Err(), ErrDispatchServer)
}

func TestDispatch_RetrySucceeds(t *testing.T) {
	sender := &scriptedSender{errs: []error{errors.New("connection reset by peer")}}
	out := newTestDispatcher(sender).Dispatch(context.Background(), testEmail())

	assert.Equal(t, Sent, out.Kind)
	assert.Equal(t, 2, out.Attempts)
	require.Len(t, sender.emails, 2)
	assert.Same(t, sender.emails[0], sender.emails[1])
}

func TestDispatch_RetryAfterServerThenClientError(t *testing.T) {
	sender := &scriptedSender{errs: []error{
		&APIError{StatusCode: http.StatusBadGateway},
		&APIError{StatusCode: http.StatusUnprocessableEntity},
	}}
	out := newTestDispatcher(sender).Dispatch(context.Background(), testEmail())

	assert.Equal(t, ClientError, out.Kind)
	assert.Equal(t, 2, out.Attempts)
}

func TestDispatch_TimeoutIsServerError(t *testing.T) {
	sender := &scriptedSender{block: true}
	d := NewDispatcher(sender, DispatcherConfig{Timeout: 10 * time.Millisecond}, logging.NewDiscardLogger())
	d.retryDelay = 0

	start := time.Now()
	out := d.Dispatch(context.Background(), testEmail())

	assert.Equal(t, ServerError, out.Kind)
	assert.Equal(t, 2, out.Attempts)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDispatch_CancelledContextStopsRetry(t *testing.T) {
	sender := &scriptedSender{errs: []error{&APIError{StatusCode: http.StatusInternalServerError}}}
	d := NewDispatcher(sender, DispatcherConfig{Timeout: time.Second, RetryDelay: time.Hour}, logging.NewDiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	out := d.Dispatch(ctx, testEmail())
	assert.Equal(t, ServerError, out.Kind)
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, 1, sender.Calls())
}

func TestClassify(t *testing.T) {
	smithyResp := func(code int) error {
		return &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
			Err:      errors.New("api error"),
		}
	}

	tests := []struct {
		name string
		err  error
		want OutcomeKind
	}{
		{"nil", nil, Sent},
		{"400", &APIError{StatusCode: 400}, ClientError},
		{"429", &APIError{StatusCode: 429}, ClientError},
		{"500", &APIError{StatusCode: 500}, ServerError},
		{"503 wrapped", errors.Join(errors.New("x"), &APIError{StatusCode: 503}), ServerError},
		{"deadline", context.DeadlineExceeded, ServerError},
		{"network", errors.New("dial tcp: connection refused"), ServerError},
		{"smithy 400", smithyResp(400), ClientError},
		{"smithy 500", smithyResp(500), ServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "sent", Sent.String())
	assert.Equal(t, "client_error", ClientError.String())
	assert.Equal(t, "server_error", ServerError.String())
	assert.Equal(t, "outcome(9)", OutcomeKind(9).String())
}

// echoingMailAPI rejects every message and repeats the request in its
// error response, as several providers do
func echoingMailAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("rejected: " + string(payload)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDispatch_NeverLogsBodyAtInfo(t *testing.T) {
	const secret = "my phone is 555-0199 and I live at 1 Elm St"
	srv := echoingMailAPI(t)

	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LogConfig{Level: logging.LevelInfo, Output: &buf})
	require.NoError(t, err)

	email := testEmail()
	email.Body = secret
	d := NewDispatcher(NewHTTPSender(srv.URL, "", srv.Client()), DispatcherConfig{Timeout: time.Second, RetryDelay: time.Millisecond}, logger)

	out := d.Dispatch(context.Background(), email)

	require.Equal(t, ServerError, out.Kind)
	assert.Equal(t, 2, out.Attempts)
	assert.NotEmpty(t, buf.String())
	assert.NotContains(t, buf.String(), secret)
	assert.NotContains(t, out.Detail, secret)
	assert.NotContains(t, out.Err().Error(), secret)
}

func TestDispatch_LogsUpstreamResponseAtDebug(t *testing.T) {
	srv := echoingMailAPI(t)

	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LogConfig{Level: logging.LevelDebug, Output: &buf})
	require.NoError(t, err)

	d := NewDispatcher(NewHTTPSender(srv.URL, "", srv.Client()), DispatcherConfig{Timeout: time.Second, RetryDelay: time.Millisecond}, logger)
	d.Dispatch(context.Background(), testEmail())

	assert.True(t, strings.Contains(buf.String(), "upstream response"))
}

func TestAPIErrorOmitsBody(t *testing.T) {
	err := &APIError{Provider: "http", StatusCode: http.StatusBadRequest, Body: "rejected: hello"}
	assert.Equal(t, "http: status 400", err.Error())
}
