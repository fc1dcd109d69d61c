package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Sentinel errors for dispatch outcomes
var (
	ErrDispatchClient = errors.New("mail API rejected the request")
	ErrDispatchServer = errors.New("mail API unavailable")
)

// APIError is a non-2xx answer from a mail API. Body holds the start of the
// upstream response; providers may echo the message back in it, so it is
// kept out of Error() and only logged at debug level.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
}

// IsClientError reports a 4xx answer
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

// Classify maps a Sender error to an outcome kind. nil is Sent, a 4xx
// *APIError (or an AWS error reported as a client fault) is ClientError,
// everything else including timeouts and network failures is ServerError.
func Classify(err error) OutcomeKind {
	if err == nil {
		return Sent
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ServerError
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsClientError() {
			return ClientError
		}
		return ServerError
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.Response != nil {
		if code := respErr.HTTPStatusCode(); code >= 400 && code < 500 {
			return ClientError
		}
		return ServerError
	}

	var smithyErr smithy.APIError
	if errors.As(err, &smithyErr) && smithyErr.ErrorFault() == smithy.FaultClient {
		return ClientError
	}

	return ServerError
}
