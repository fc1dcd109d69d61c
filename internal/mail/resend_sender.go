package mail

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/resend/resend-go/v3"
)

// ResendSender sends through the Resend API
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend sender. baseURL overrides the API
// endpoint when non-empty.
func NewResendSender(apiKey, baseURL string) (*ResendSender, error) {
	httpClient := &http.Client{Transport: &statusRecorder{next: http.DefaultTransport}}
	client := resend.NewCustomClient(httpClient, apiKey)

	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid resend base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendSender{client: client}, nil
}

func (s *ResendSender) Name() string {
	return "resend"
}

// Send implements Sender
func (s *ResendSender) Send(ctx context.Context, email *OutboundEmail) error {
	status := new(atomic.Int32)
	ctx = context.WithValue(ctx, statusKey{}, status)

	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Text:    email.Body,
	})
	if err == nil {
		return nil
	}

	// resend-go flattens API failures into plain errors, so the status is
	// taken from the transport.
	if code := int(status.Load()); code != 0 {
		return &APIError{Provider: s.Name(), StatusCode: code, Body: err.Error()}
	}
	return fmt.Errorf("resend: send email: %w", err)
}

type statusKey struct{}

// statusRecorder stores the last response status into the request context
type statusRecorder struct {
	next http.RoundTripper
}

func (r *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if status, ok := req.Context().Value(statusKey{}).(*atomic.Int32); ok {
		status.Store(int32(resp.StatusCode))
	}
	return resp, nil
}
