package constants

// Context keys set by middleware
const (
	ContextKeyRequestID = "RequestID"
	ContextKeyCallerKey = "callerKey"
	ContextKeyRawBody   = "rawBody"
	ContextKeyContact   = "contact"
)

// Headers
const (
	HeaderRequestID = "X-Request-ID"
	HeaderAPIKey    = "X-API-Key"
)
