package mail

import "fmt"

// OutcomeKind classifies a dispatch attempt
type OutcomeKind int

const (
	Sent OutcomeKind = iota
	ClientError
	ServerError
)

func (k OutcomeKind) String() string {
	switch k {
	case Sent:
		return "sent"
	case ClientError:
		return "client_error"
	case ServerError:
		return "server_error"
	}
	return fmt.Sprintf("outcome(%d)", int(k))
}

// Outcome is the result of dispatching one email
type Outcome struct {
	Kind     OutcomeKind
	Detail   string
	Attempts int
}

// Err returns nil for Sent and a sentinel-wrapped error otherwise
func (o Outcome) Err() error {
	switch o.Kind {
	case Sent:
		return nil
	case ClientError:
		return fmt.Errorf("%w: %s", ErrDispatchClient, o.Detail)
	default:
		return fmt.Errorf("%w: %s", ErrDispatchServer, o.Detail)
	}
}
