package mail

import "context"

// OutboundEmail is a fully rendered message ready for one dispatch.
// From and To always come from configuration.
type OutboundEmail struct {
	Subject string
	Body    string
	To      string
	From    string
}

// Sender delivers a single email through an external mail API.
// Implementations report HTTP-level rejections as *APIError so the
// dispatcher can tell client faults from server faults.
type Sender interface {
	Send(ctx context.Context, email *OutboundEmail) error
	// Name identifies the provider in logs
	Name() string
}
